package core

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/tdewolff/minify/v2"
	minjs "github.com/tdewolff/minify/v2/js"
)

const ReloadScriptPath = "/__boilerplate_reload.js"

const reloadClientSource = `
(function () {
	var scheme = location.protocol === "https:" ? "wss://" : "ws://";
	var socket = new WebSocket(scheme + location.host + "%s");
	socket.onmessage = function (event) {
		if (event.data === "reload") {
			location.reload();
		}
	};
	socket.onclose = function () {
		setTimeout(function () { location.reload(); }, 1000);
	};
})();
`

var (
	reloadScriptOnce sync.Once
	reloadScript     []byte
	reloadScriptETag string
)

// ReloadScript returns the minified live reload client. The source is used
// as-is if minification fails.
func ReloadScript() []byte {
	reloadScriptOnce.Do(func() {
		src := fmt.Sprintf(reloadClientSource, ReloadSocketPath)

		m := minify.New()
		m.AddFunc("application/javascript", minjs.Minify)

		var buf bytes.Buffer
		if err := m.Minify("application/javascript", &buf, strings.NewReader(src)); err != nil {
			reloadScript = []byte(src)
		} else {
			reloadScript = buf.Bytes()
		}

		h := md5.New()
		h.Write(reloadScript)
		reloadScriptETag = `"` + hex.EncodeToString(h.Sum(nil))[:6] + `"`
	})
	return reloadScript
}

func ReloadScriptHandler(w http.ResponseWriter, r *http.Request) {
	script := ReloadScript()

	w.Header().Set("Content-Type", "application/javascript")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("ETag", reloadScriptETag)

	if r.Header.Get("If-None-Match") == reloadScriptETag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Write(script)
}
