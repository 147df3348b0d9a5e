package server

import (
	"bytes"
	"fmt"
	"io/fs"
	"log"
	"mime"
	"net/http"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/minify/v2/json"
)

type asset struct {
	contentType string
	data        []byte
}

// assets serves the frontend from memory, minified once at startup.
type assets struct {
	files   map[string]asset
	modTime time.Time
}

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("text/css", css.Minify)
	m.AddFuncRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), js.Minify)
	m.AddFuncRegexp(regexp.MustCompile("[/+]json$"), json.Minify)
	return m
}

func newAssets(fsys fs.FS, minifyEnabled bool) (*assets, error) {
	a := &assets{files: make(map[string]asset), modTime: time.Now()}

	var m *minify.M
	if minifyEnabled {
		m = newMinifier()
	}

	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}

		contentType := mime.TypeByExtension(path.Ext(name))
		if contentType == "" {
			contentType = http.DetectContentType(data)
		}
		if m != nil {
			mediatype, _, _ := strings.Cut(contentType, ";")
			if out, err := m.Bytes(mediatype, data); err == nil {
				data = out
			} else if err != minify.ErrNotExist {
				return fmt.Errorf("minify %s: %w", name, err)
			}
		}

		a.files["/"+name] = asset{contentType: contentType, data: data}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Loaded %d frontend files (minify=%v)", len(a.files), minifyEnabled)
	return a, nil
}

func (a *assets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Path
	if strings.HasSuffix(name, "/") {
		name += "index.html"
	}
	f, ok := a.files[name]
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", f.contentType)
	http.ServeContent(w, r, name, a.modTime, bytes.NewReader(f.data))
}
