// Package search maintains a local full-text index over message content and
// answers /find-style queries against it. The index follows the committed
// event stream as a sink; it never feeds back into the projection.
package search

import (
	"strconv"
	"strings"

	"chat-sync/domain"
)

const defaultLimit = 10

// Query decouples the raw /find input from the index engine requirements.
type Query struct {
	RawInput string
	Terms    string
	Room     domain.RoomID
	Limit    int
}

// ParseQuery extracts command-line style arguments from a raw input.
// Example: /find "invoice" --room 12 --limit 5
func ParseQuery(input string) Query {
	query := Query{
		RawInput: input,
		Limit:    defaultLimit,
	}

	parts := strings.Fields(input)
	var textTerms []string

	for i := 0; i < len(parts); i++ {
		part := parts[i]

		if strings.HasPrefix(part, "--") && i+1 < len(parts) {
			key := strings.TrimPrefix(part, "--")
			val := parts[i+1]

			switch key {
			case "room":
				if id, err := strconv.Atoi(val); err == nil {
					query.Room = domain.RoomID(id)
				}
			case "limit":
				if n, err := strconv.Atoi(val); err == nil && n > 0 {
					query.Limit = n
				}
			}
			i++
			continue
		}

		if !strings.HasPrefix(part, "/") {
			textTerms = append(textTerms, strings.Trim(part, `"`))
		}
	}

	query.Terms = strings.Join(textTerms, " ")
	return query
}
