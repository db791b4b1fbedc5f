package httpserver

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// SPA serves a built single-page client. Paths that do not name a file get
// index.html so client-side routes like /invite/{token} resolve.
type SPA struct {
	root  string
	files http.Handler
}

func NewSPA(root string) *SPA {
	return &SPA{root: root, files: http.FileServer(http.Dir(root))}
}

func (s *SPA) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	clean := path.Clean("/" + r.URL.Path)
	if clean != "/" {
		info, err := os.Stat(filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(clean, "/"))))
		if err == nil && !info.IsDir() {
			s.files.ServeHTTP(w, r)
			return
		}
	}

	http.ServeFile(w, r, filepath.Join(s.root, "index.html"))
}
