package search

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/blugelabs/bluge"

	"chat-sync/domain"
	"chat-sync/domain/event"
)

// Index wraps a bluge writer holding one document per live message.
// It consumes committed events: inserts and edits upsert, deletes drop the
// document, so the index tracks the projection's soft-delete semantics
// (deleted messages disappear from search results too).
type Index struct {
	writer *bluge.Writer
	log    *slog.Logger
}

func NewIndex(writer *bluge.Writer, log *slog.Logger) *Index {
	return &Index{writer: writer, log: log}
}

type Hit struct {
	Room    domain.RoomID
	ID      domain.MessageID
	Content string
}

func (x *Index) Consume(_ context.Context, e event.Event) error {
	switch ev := e.(type) {
	case event.MessageReceived:
		return x.upsert(ev.Message)
	case event.MessageEdited:
		return x.upsert(ev.Message)
	case event.MessagesLoaded:
		for _, m := range ev.Messages {
			if err := x.upsert(m); err != nil {
				return err
			}
		}
		return nil
	case event.MessageDeleted:
		return x.writer.Delete(bluge.Identifier(docID(ev.Room, ev.ID)))
	}
	return nil
}

func (x *Index) upsert(m domain.Message) error {
	if m.Content == "" {
		// Symbol- or file-only messages have nothing searchable.
		return nil
	}
	doc := bluge.NewDocument(docID(m.Room, m.ID)).
		AddField(bluge.NewTextField("content", m.Content).StoreValue()).
		AddField(bluge.NewKeywordField("room", strconv.Itoa(int(m.Room))).StoreValue()).
		AddField(bluge.NewKeywordField("sender", strconv.Itoa(int(m.Sender)))).
		AddField(bluge.NewDateTimeField("at", m.At))
	return x.writer.Update(doc.ID(), doc)
}

// Search answers a parsed query against the current index state.
func (x *Index) Search(ctx context.Context, query Query) ([]Hit, error) {
	reader, err := x.writer.Reader()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = reader.Close()
	}()

	boolean := bluge.NewBooleanQuery().
		AddMust(bluge.NewMatchQuery(query.Terms).SetField("content"))
	if query.Room != 0 {
		boolean.AddMust(bluge.NewTermQuery(strconv.Itoa(int(query.Room))).SetField("room"))
	}

	request := bluge.NewTopNSearch(query.Limit, boolean)
	iterator, err := reader.Search(ctx, request)
	if err != nil {
		return nil, err
	}

	var hits []Hit
	next, err := iterator.Next()
	for err == nil && next != nil {
		var hit Hit
		visitErr := next.VisitStoredFields(func(field string, value []byte) bool {
			switch field {
			case "_id":
				hit.Room, hit.ID = parseDocID(string(value))
			case "content":
				hit.Content = string(value)
			}
			return true
		})
		if visitErr != nil {
			return nil, visitErr
		}
		hits = append(hits, hit)
		next, err = iterator.Next()
	}
	if err != nil {
		return nil, err
	}
	return hits, nil
}

func docID(room domain.RoomID, id domain.MessageID) string {
	return fmt.Sprintf("%d:%d", room, id)
}

func parseDocID(id string) (domain.RoomID, domain.MessageID) {
	var room, message int
	if _, err := fmt.Sscanf(id, "%d:%d", &room, &message); err != nil {
		return 0, 0
	}
	return domain.RoomID(room), domain.MessageID(message)
}
