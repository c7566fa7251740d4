package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"

	"chat-sync/domain"
	"chat-sync/moderation"
	"chat-sync/repositories"
)

// Config defines the viewer's environment variables. The viewer only needs
// the history cache; it never talks to the server.
type Config struct {
	BadgerFilepath string   `env:"BADGER_FILEPATH,required=true"`
	MuteWords      []string `env:"MUTE_WORDS"`
	MuteMask       string   `env:"MUTE_MASK,default=*"`
}

func main() {
	room := flag.Int("room", 1, "room to display")
	limit := flag.Int("limit", 50, "maximum number of messages")
	flag.Parse()

	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		log.Fatalf("Config error: %v", err)
	}

	// Read-only open: a running client may hold the lock.
	opts := badger.DefaultOptions(config.BadgerFilepath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.ERROR)
	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open history cache: %v", err)
	}
	defer db.Close()

	repo := repositories.NewMessageRepository(db, slog.Default(), limit)
	messages, _, err := repo.GetMessages(domain.RoomID(*room), nil)
	if err != nil {
		log.Fatalf("Failed to read history: %v", err)
	}

	var filter *moderation.Filter
	if len(config.MuteWords) > 0 {
		mask := []rune(config.MuteMask)
		f, err := moderation.NewFilter(config.MuteWords, mask[0])
		if err != nil {
			log.Fatalf("Invalid mute words: %v", err)
		}
		filter = &f
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Time", "Sender", "Message"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	// GetMessages walks newest first; render oldest first.
	for i := len(messages) - 1; i >= 0; i-- {
		m := messages[i]
		table.Append([]string{
			m.At.Format("2006-01-02 15:04:05"),
			strconv.Itoa(int(m.Sender)),
			renderContent(m, filter),
		})
	}
	table.Render()

	color.Green.Printf("%d messages in room %d\n", len(messages), *room)
}

func renderContent(m domain.Message, filter *moderation.Filter) string {
	if m.Deleted {
		return color.Gray.Render("<message deleted>")
	}
	content := m.Content
	if filter != nil {
		content = filter.Mask(content)
	}
	if m.Edited > 0 {
		content += color.Gray.Render(" (edited)")
	}
	if len(m.Files) > 0 {
		content += color.Cyan.Render(fmt.Sprintf(" [%d file(s)]", len(m.Files)))
	}
	return content
}
