package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"quantcost/internal/domain"
	"quantcost/internal/event"

	"github.com/gorilla/websocket"
)

func snapshotWithBid(price string) domain.OrderbookSnapshot {
	return domain.OrderbookSnapshot{
		Bids: []domain.BookLevel{{Price: price, Amount: "1"}},
		Asks: []domain.BookLevel{{Price: "101", Amount: "1"}},
	}
}

// startResequencer wires a resequencer the way Connect does, without a
// socket, so decode completion order can be controlled exactly.
func startResequencer(inbox chan event.Event) (*Ingestor, chan decoded) {
	i := New(inbox, 50)
	i.done = make(chan struct{})
	results := make(chan decoded, 16)
	i.wg.Add(1)
	go i.resequence(results)
	return i, results
}

func TestResequence_OutOfOrderCompletion(t *testing.T) {
	inbox := make(chan event.Event, 16)
	i, results := startResequencer(inbox)

	// Message A (seq 1) finishes decoding last; B and C land first.
	results <- decoded{seq: 2, snap: snapshotWithBid("2")}
	results <- decoded{seq: 3, snap: snapshotWithBid("3")}
	results <- decoded{seq: 1, snap: snapshotWithBid("1")}
	close(results)
	<-i.Done()

	for want := uint64(1); want <= 3; want++ {
		ev := <-inbox
		book, ok := ev.(*event.BookUpdateEvent)
		if !ok {
			t.Fatalf("event %d: %T, want BookUpdateEvent", want, ev)
		}
		if book.Seq != want {
			t.Fatalf("delivery order broken: got seq %d, want %d", book.Seq, want)
		}
	}
}

func TestResequence_ErrorsKeepTheirSlot(t *testing.T) {
	inbox := make(chan event.Event, 16)
	i, results := startResequencer(inbox)

	results <- decoded{seq: 2, err: &domain.FeedError{Class: domain.FeedErrInvalidJSON}}
	results <- decoded{seq: 1, snap: snapshotWithBid("1")}
	results <- decoded{seq: 3, snap: snapshotWithBid("3")}
	close(results)
	<-i.Done()

	if ev := <-inbox; ev.(*event.BookUpdateEvent).Seq != 1 {
		t.Fatal("first delivery should be snapshot 1")
	}
	if _, ok := (<-inbox).(*event.FeedErrorEvent); !ok {
		t.Fatal("second delivery should be the feed error")
	}
	if ev := <-inbox; ev.(*event.BookUpdateEvent).Seq != 3 {
		t.Fatal("third delivery should be snapshot 3")
	}
}

func TestResequence_FullInboxDropsWholeMessages(t *testing.T) {
	inbox := make(chan event.Event, 1)
	i, results := startResequencer(inbox)

	results <- decoded{seq: 1, snap: snapshotWithBid("1")}
	results <- decoded{seq: 2, snap: snapshotWithBid("2")}
	results <- decoded{seq: 3, snap: snapshotWithBid("3")}
	close(results)
	<-i.Done()

	// Only the first fits; later ones are dropped in full, so whatever
	// is delivered is still in receipt order.
	ev := <-inbox
	if got := ev.(*event.BookUpdateEvent).Seq; got != 1 {
		t.Fatalf("kept event seq = %d, want 1", got)
	}
	select {
	case ev := <-inbox:
		t.Fatalf("unexpected extra event: %+v", ev)
	default:
	}
}

func TestIngestor_ConnectAndStream(t *testing.T) {
	messages := []string{
		`{"bids":[["100","2"]],"asks":[["101","1"]]}`,
		`not json`,
		`{"bids":[["100.5","2"]],"asks":[["101.5","1"]]}`,
	}

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()
		for _, m := range messages {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(m)); err != nil {
				return
			}
		}
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	}))
	defer srv.Close()

	inbox := make(chan event.Event, 16)
	ing := New(inbox, 50)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	if err := ing.Connect(context.Background(), url); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	if !ing.IsConnected() {
		t.Error("should report connected")
	}

	select {
	case <-ing.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("pipeline did not drain")
	}
	ing.Disconnect()

	var books []*event.BookUpdateEvent
	var feedErrs []*event.FeedErrorEvent
drain:
	for {
		select {
		case ev := <-inbox:
			switch e := ev.(type) {
			case *event.BookUpdateEvent:
				books = append(books, e)
			case *event.FeedErrorEvent:
				feedErrs = append(feedErrs, e)
			}
		default:
			break drain
		}
	}

	if len(books) != 2 {
		t.Fatalf("book events = %d, want 2", len(books))
	}
	if books[0].Seq >= books[1].Seq {
		t.Errorf("book events out of order: %d then %d", books[0].Seq, books[1].Seq)
	}
	if books[0].Snapshot.Bids[0].Price != "100" {
		t.Errorf("first snapshot = %+v, want bid 100", books[0].Snapshot.Bids)
	}
	if len(feedErrs) == 0 {
		t.Error("the malformed message should raise a feed error")
	}
	if ing.IsConnected() {
		t.Error("should report disconnected after close")
	}
}

func TestIngestor_ConnectRejectsSecondConnection(t *testing.T) {
	upgrader := websocket.Upgrader{}
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		<-block
	}))
	defer srv.Close()
	defer close(block)

	inbox := make(chan event.Event, 4)
	ing := New(inbox, 50)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	if err := ing.Connect(context.Background(), url); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	if err := ing.Connect(context.Background(), url); err == nil {
		t.Error("second connect should fail while connected")
	}
	ing.Disconnect()
}

func TestIngestor_DialFailureIsRetriable(t *testing.T) {
	inbox := make(chan event.Event, 4)
	ing := New(inbox, 50)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := ing.Connect(ctx, "ws://127.0.0.1:1/nowhere")
	if err == nil {
		t.Fatal("connect to dead endpoint should fail")
	}
	if !domain.IsRetriable(err) {
		t.Errorf("dial failure should be retriable: %v", err)
	}
}
