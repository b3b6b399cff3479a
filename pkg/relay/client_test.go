package relay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Erunixz/thru.ai/pkg/order"
)

func sampleOrder() order.Order {
	o := order.New()
	o.Items = []order.Item{{
		Name:      "Cheeseburger",
		Quantity:  2,
		Price:     6.49,
		Modifiers: []string{"no onions"},
	}}
	o.Total = 12.98
	return o
}

func TestClientPush(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var got order.Order
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != "POST" {
				t.Errorf("method = %s", r.Method)
			}
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("content-type = %q", ct)
			}
			if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
				t.Errorf("decode body: %v", err)
			}
			json.NewEncoder(w).Encode(PushResponse{Success: true, OrderID: 1})
		}))
		defer srv.Close()

		c := NewClient(srv.URL, time.Second, nil)
		if err := c.Push(context.Background(), sampleOrder()); err != nil {
			t.Fatalf("Push: %v", err)
		}
		if got.Total != 12.98 || len(got.Items) != 1 {
			t.Errorf("pushed order = %+v", got)
		}
	})

	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, time.Second, nil)
		if err := c.Push(context.Background(), sampleOrder()); err == nil {
			t.Error("Push: want error on 500")
		}
	})

	t.Run("slow server times out", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(300 * time.Millisecond)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, 50*time.Millisecond, nil)
		start := time.Now()
		err := c.Push(context.Background(), sampleOrder())
		if err == nil {
			t.Fatal("Push: want timeout error")
		}
		if elapsed := time.Since(start); elapsed > 250*time.Millisecond {
			t.Errorf("push waited %v past its timeout", elapsed)
		}
	})
}

func TestStore(t *testing.T) {
	s := NewStore()

	if _, ok := s.Latest(); ok {
		t.Error("Latest() = ok on empty store")
	}

	first := s.Add(sampleOrder())
	second := s.Add(sampleOrder())

	if first.ID != 1 || second.ID != 2 {
		t.Errorf("ids = %d, %d", first.ID, second.ID)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d", s.Len())
	}

	latest, ok := s.Latest()
	if !ok || latest.ID != 2 {
		t.Errorf("Latest() = %+v, %v", latest, ok)
	}

	all := s.All()
	if len(all) != 2 || all[0].ID != 1 {
		t.Errorf("All() = %+v", all)
	}
}

func TestMockPusher(t *testing.T) {
	m := NewMockPusher()
	if err := m.Push(context.Background(), sampleOrder()); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if m.PushCount() != 1 {
		t.Errorf("PushCount() = %d", m.PushCount())
	}
	if last := m.LastPushed(); last == nil || last.Total != 12.98 {
		t.Errorf("LastPushed() = %+v", last)
	}
}
