package watch

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
)

const (
	routeIndex    = "/"
	routeEvents   = "/events"
	routeGraphDOT = "/graph.dot"
)

const sseEventGraph = "graph"

// broker manages SSE client connections and broadcasts DOT strings.
type broker struct {
	mu      sync.Mutex
	clients map[chan string]struct{}
	latest  string
}

func newBroker() *broker {
	return &broker{
		clients: make(map[chan string]struct{}),
	}
}

// subscribe registers a client channel. A subscriber immediately
// receives the latest graph, if one has been published.
func (b *broker) subscribe() chan string {
	ch := make(chan string, 1)
	b.mu.Lock()
	b.clients[ch] = struct{}{}
	if b.latest != "" {
		ch <- b.latest
	}
	b.mu.Unlock()
	return ch
}

func (b *broker) unsubscribe(ch chan string) {
	b.mu.Lock()
	delete(b.clients, ch)
	close(ch)
	b.mu.Unlock()
}

// publish broadcasts dot to every client. Slow clients miss
// intermediate graphs rather than blocking the publisher.
func (b *broker) publish(dot string) {
	b.mu.Lock()
	b.latest = dot
	for ch := range b.clients {
		select {
		case ch <- dot:
		default:
		}
	}
	b.mu.Unlock()
}

func (b *broker) latestGraph() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.latest
}

func newServer(b *broker, port int) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc(routeIndex, handleIndex)
	mux.HandleFunc(routeEvents, handleSSE(b))
	mux.HandleFunc(routeGraphDOT, handleGraphDOT(b))

	return &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}
}

func handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(indexHTML)); err != nil {
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}

// handleGraphDOT serves the latest graph as plain DOT, for curl and
// scripted consumers.
func handleGraphDOT(b *broker) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		dot := b.latestGraph()
		if dot == "" {
			http.Error(w, "no graph yet", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, dot)
	}
}

func handleSSE(b *broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		ch := b.subscribe()
		defer b.unsubscribe(ch)

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				return
			case dot, ok := <-ch:
				if !ok {
					return
				}
				fmt.Fprintf(w, "event: %s\n", sseEventGraph)
				for _, line := range strings.Split(dot, "\n") {
					fmt.Fprintf(w, "data: %s\n", line)
				}
				fmt.Fprintf(w, "\n")
				flusher.Flush()
			}
		}
	}
}
