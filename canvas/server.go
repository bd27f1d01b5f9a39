package canvas

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/phanisrikanth1989/recdataprep/flowgraph"
)

// EditorServer exposes the editor core over HTTP: document access, the
// smart-join trigger, the guided workflow, derived layout, diagnostics, an
// SSE event stream, and WebSocket manual-connection sessions.
type EditorServer struct {
	editor *Editor

	mu          sync.Mutex
	subscribers []chan Event

	upgrader websocket.Upgrader
}

// NewEditorServer creates a server over the given editor and subscribes to
// its events for streaming.
func NewEditorServer(editor *Editor) *EditorServer {
	s := &EditorServer{editor: editor}
	editor.Events().On(func(e Event) {
		s.mu.Lock()
		for _, sub := range s.subscribers {
			select {
			case sub <- e:
			default:
				// Subscriber channel full, skip
			}
		}
		s.mu.Unlock()
	})
	return s
}

// Handler returns an http.Handler for the editor server.
func (s *EditorServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /graph", s.handleGetGraph)
	mux.HandleFunc("PUT /graph", s.handleReplaceGraph)
	mux.HandleFunc("POST /graph/clear", s.handleClearGraph)
	mux.HandleFunc("POST /graph/nodes", s.handleAddNode)
	mux.HandleFunc("POST /graph/nodes/{id}/select", s.handleSelectNode)
	mux.HandleFunc("DELETE /graph/nodes/{id}", s.handleDeleteNode)

	mux.HandleFunc("POST /join", s.handleJoin)
	mux.HandleFunc("GET /join/guided", s.handleGetGuided)
	mux.HandleFunc("POST /join/guided/inputs", s.handleGuidedInputs)
	mux.HandleFunc("POST /join/guided/fanin", s.handleGuidedFanIn)
	mux.HandleFunc("POST /join/guided/final", s.handleGuidedFinal)
	mux.HandleFunc("POST /join/guided/advance", s.handleGuidedAdvance)
	mux.HandleFunc("POST /join/guided/complete", s.handleGuidedComplete)
	mux.HandleFunc("POST /join/guided/cancel", s.handleGuidedCancel)

	mux.HandleFunc("GET /layout", s.handleLayout)
	mux.HandleFunc("GET /diagnostics", s.handleDiagnostics)
	mux.HandleFunc("GET /events", s.handleStreamEvents)
	mux.HandleFunc("GET /connect", s.handleConnectSession)

	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// graphResponse is the document payload with its revision.
type graphResponse struct {
	Revision string           `json:"revision"`
	Graph    *flowgraph.Graph `json:"graph"`
}

// handleGetGraph handles GET /graph.
func (s *EditorServer) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, graphResponse{
		Revision: s.editor.Revision(),
		Graph:    s.editor.Graph(),
	})
}

// handleReplaceGraph handles PUT /graph.
func (s *EditorServer) handleReplaceGraph(w http.ResponseWriter, r *http.Request) {
	g, err := flowgraph.Decode(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.editor.Replace(g)
	writeJSON(w, http.StatusOK, graphResponse{
		Revision: s.editor.Revision(),
		Graph:    s.editor.Graph(),
	})
}

// handleClearGraph handles POST /graph/clear.
func (s *EditorServer) handleClearGraph(w http.ResponseWriter, r *http.Request) {
	s.editor.Clear()
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, `{"status":"cleared"}`)
}

// addNodeRequest is the request body for placing a node.
type addNodeRequest struct {
	Type     string             `json:"type"`
	Position flowgraph.Position `json:"position"`
}

// handleAddNode handles POST /graph/nodes.
func (s *EditorServer) handleAddNode(w http.ResponseWriter, r *http.Request) {
	var req addNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Type == "" {
		http.Error(w, "type is required", http.StatusBadRequest)
		return
	}
	node := s.editor.AddNode(req.Type, req.Position)
	writeJSON(w, http.StatusCreated, node)
}

// handleSelectNode handles POST /graph/nodes/{id}/select.
func (s *EditorServer) handleSelectNode(w http.ResponseWriter, r *http.Request) {
	if err := s.editor.SelectNode(r.PathValue("id")); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, `{"status":"selected"}`)
}

// handleDeleteNode handles DELETE /graph/nodes/{id}.
func (s *EditorServer) handleDeleteNode(w http.ResponseWriter, r *http.Request) {
	if err := s.editor.DeleteNode(r.PathValue("id")); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, `{"status":"deleted"}`)
}

// joinResponse is the outcome payload of a smart or guided join.
type joinResponse struct {
	Status       JoinStatus        `json:"status"`
	EdgesCreated []*flowgraph.Edge `json:"edgesCreated,omitempty"`
	Guided       *GuidedJoin       `json:"guided,omitempty"`
	Revision     string            `json:"revision"`
}

// handleJoin handles POST /join.
func (s *EditorServer) handleJoin(w http.ResponseWriter, r *http.Request) {
	result := s.editor.RunSmartJoin()
	writeJSON(w, http.StatusOK, joinResponse{
		Status:       result.Status,
		EdgesCreated: result.EdgesCreated,
		Guided:       result.Guided,
		Revision:     s.editor.Revision(),
	})
}

// handleGetGuided handles GET /join/guided.
func (s *EditorServer) handleGetGuided(w http.ResponseWriter, r *http.Request) {
	gj := s.editor.Guided()
	if gj == nil {
		http.Error(w, "no guided join in progress", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, gj)
}

// guidedInputsRequest assigns one input candidate to a transform.
type guidedInputsRequest struct {
	Input     string `json:"input"`
	Transform string `json:"transform"`
}

// handleGuidedInputs handles POST /join/guided/inputs.
func (s *EditorServer) handleGuidedInputs(w http.ResponseWriter, r *http.Request) {
	gj := s.editor.Guided()
	if gj == nil {
		http.Error(w, "no guided join in progress", http.StatusNotFound)
		return
	}
	var req guidedInputsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := gj.AssignInput(req.Input, req.Transform); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, gj)
}

// guidedFanInRequest records the fan-in selection.
type guidedFanInRequest struct {
	Upstream   []string `json:"upstream"`
	Downstream string   `json:"downstream"`
}

// handleGuidedFanIn handles POST /join/guided/fanin.
func (s *EditorServer) handleGuidedFanIn(w http.ResponseWriter, r *http.Request) {
	gj := s.editor.Guided()
	if gj == nil {
		http.Error(w, "no guided join in progress", http.StatusNotFound)
		return
	}
	var req guidedFanInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := gj.SetFanIn(req.Upstream, req.Downstream); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, gj)
}

// guidedFinalRequest selects the terminal node.
type guidedFinalRequest struct {
	Node string `json:"node"`
}

// handleGuidedFinal handles POST /join/guided/final.
func (s *EditorServer) handleGuidedFinal(w http.ResponseWriter, r *http.Request) {
	gj := s.editor.Guided()
	if gj == nil {
		http.Error(w, "no guided join in progress", http.StatusNotFound)
		return
	}
	var req guidedFinalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	gj.SetFinalOutput(req.Node)
	writeJSON(w, http.StatusOK, gj)
}

// handleGuidedAdvance handles POST /join/guided/advance.
func (s *EditorServer) handleGuidedAdvance(w http.ResponseWriter, r *http.Request) {
	ok, err := s.editor.GuidedAdvance()
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	gj := s.editor.Guided()
	if !ok {
		writeJSON(w, http.StatusUnprocessableEntity, gj)
		return
	}
	writeJSON(w, http.StatusOK, gj)
}

// handleGuidedComplete handles POST /join/guided/complete.
func (s *EditorServer) handleGuidedComplete(w http.ResponseWriter, r *http.Request) {
	result, err := s.editor.GuidedComplete()
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, joinResponse{
		Status:       result.Status,
		EdgesCreated: result.EdgesCreated,
		Revision:     s.editor.Revision(),
	})
}

// handleGuidedCancel handles POST /join/guided/cancel.
func (s *EditorServer) handleGuidedCancel(w http.ResponseWriter, r *http.Request) {
	s.editor.GuidedCancel()
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, `{"status":"cancelled"}`)
}

// handleLayout handles GET /layout.
func (s *EditorServer) handleLayout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.editor.Layout())
}

// diagnosticResponse is the JSON shape of a lint diagnostic.
type diagnosticResponse struct {
	Rule     string    `json:"rule"`
	Severity string    `json:"severity"`
	Message  string    `json:"message"`
	NodeID   string    `json:"node,omitempty"`
	Edge     [2]string `json:"edge,omitempty"`
	Fix      string    `json:"fix,omitempty"`
}

// handleDiagnostics handles GET /diagnostics.
func (s *EditorServer) handleDiagnostics(w http.ResponseWriter, r *http.Request) {
	diags := Validate(s.editor.Graph(), s.editor.Registry())
	response := make([]diagnosticResponse, len(diags))
	for i, d := range diags {
		response[i] = diagnosticResponse{
			Rule:     d.Rule,
			Severity: d.Severity.String(),
			Message:  d.Message,
			NodeID:   d.NodeID,
			Edge:     d.Edge,
			Fix:      d.Fix,
		}
	}
	writeJSON(w, http.StatusOK, response)
}

// handleStreamEvents handles GET /events as SSE.
func (s *EditorServer) handleStreamEvents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	eventCh := make(chan Event, 100)
	s.mu.Lock()
	s.subscribers = append(s.subscribers, eventCh)
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		for i, sub := range s.subscribers {
			if sub == eventCh {
				s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
				break
			}
		}
		s.mu.Unlock()
	}()

	for {
		select {
		case event := <-eventCh:
			data, _ := json.Marshal(event)
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		case <-r.Context().Done():
			// Client disconnected
			return
		}
	}
}

// pointerFrame is one pointer event from a manual-connection session.
type pointerFrame struct {
	Event  string  `json:"event"` // "press", "move", "release", "cancel"
	Anchor *Anchor `json:"anchor,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// sessionFrame is the server's reply to a pointer frame.
type sessionFrame struct {
	Session string          `json:"session"`
	State   DragState       `json:"state"`
	Edge    *flowgraph.Edge `json:"edge,omitempty"`
}

// handleConnectSession handles GET /connect, upgrading to a WebSocket that
// drives one manual-connection drag state machine per connection.
func (s *EditorServer) handleConnectSession(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return // Upgrade already wrote the error response
	}
	defer conn.Close()

	session := uuid.NewString()
	state := DragState{}

	for {
		var frame pointerFrame
		if err := conn.ReadJSON(&frame); err != nil {
			return
		}

		var edge *flowgraph.Edge
		at := flowgraph.Position{X: frame.X, Y: frame.Y}
		switch frame.Event {
		case "press":
			if frame.Anchor != nil {
				state = state.Press(*frame.Anchor, at)
			}
		case "move":
			state = state.Move(at)
		case "release":
			state, edge = s.editor.Release(state, frame.Anchor)
		case "cancel":
			state = state.Cancel()
		}

		reply := sessionFrame{Session: session, State: state, Edge: edge}
		if err := conn.WriteJSON(reply); err != nil {
			return
		}
	}
}
