// Package preview serves a rendered scene over HTTP and streams render
// progress to browsers over a WebSocket.
package preview

import (
	"bytes"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"whitted-renderer/internal/imageio"
	"whitted-renderer/internal/render"
	"whitted-renderer/internal/scene"
)

// Message is one WebSocket frame sent to the client.
type Message struct {
	Type      string `json:"type"` // "progress" | "done"
	Done      int    `json:"done,omitempty"`
	Total     int    `json:"total,omitempty"`
	ElapsedMS int64  `json:"elapsed_ms,omitempty"`
}

// Server renders one scene on demand and caches the last frame.
type Server struct {
	scene *scene.Scene
	view  *render.View

	mu    sync.Mutex
	frame *render.FrameBuffer

	upgrader websocket.Upgrader
}

// NewServer returns a preview of s through v. Nothing is rendered until a
// client asks for the image or opens the progress socket.
func NewServer(s *scene.Scene, v *render.View) *Server {
	return &Server{
		scene: s,
		view:  v,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handler returns the HTTP routes of the preview.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/image.png", s.handleImage)
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	fb := s.cachedFrame()

	var buf bytes.Buffer
	if err := imageio.Encode(&buf, fb.Image(), imageio.PNG); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}

// cachedFrame returns the last rendered frame. With none cached yet it
// renders one without holding mu, and keeps a frame stored meanwhile by a
// socket render in place of its own.
func (s *Server) cachedFrame() *render.FrameBuffer {
	s.mu.Lock()
	fb := s.frame
	s.mu.Unlock()
	if fb != nil {
		return fb
	}

	fb = s.view.Render(s.scene)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frame == nil {
		s.frame = fb
	}
	return s.frame
}

// handleWS renders afresh, streaming a progress message per finished column,
// then stores the frame for /image.png.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	c, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug().Err(err).Msg("ws upgrade")
		return
	}
	defer c.Close()

	start := time.Now()
	writeFailed := false
	fb := s.view.RenderProgress(s.scene, func(done, total int) {
		if writeFailed {
			return
		}
		if err := c.WriteJSON(Message{Type: "progress", Done: done, Total: total}); err != nil {
			log.Debug().Err(err).Msg("write progress")
			writeFailed = true
		}
	})
	elapsed := time.Since(start)

	s.mu.Lock()
	s.frame = fb
	s.mu.Unlock()

	log.Info().Dur("elapsed", elapsed).Msg("preview rendered")
	if writeFailed {
		return
	}
	if err := c.WriteJSON(Message{Type: "done", ElapsedMS: elapsed.Milliseconds()}); err != nil {
		log.Debug().Err(err).Msg("write done")
		return
	}
	c.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

const indexHTML = `<!doctype html>
<html>
<head><title>preview</title></head>
<body style="background:#222;color:#ddd;font-family:sans-serif">
<p id="status">connecting…</p>
<img id="frame" alt="">
<script>
const status = document.getElementById("status");
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
ws.onmessage = (ev) => {
  const m = JSON.parse(ev.data);
  if (m.type === "progress") {
    status.textContent = "rendering " + Math.round(100 * m.done / m.total) + "%";
  } else if (m.type === "done") {
    status.textContent = "done in " + m.elapsed_ms + " ms";
    document.getElementById("frame").src = "/image.png?t=" + Date.now();
  }
};
</script>
</body>
</html>
`
