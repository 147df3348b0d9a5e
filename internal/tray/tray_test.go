package tray

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBrowserCommand(t *testing.T) {
	url := "http://localhost:8080"

	cmd := browserCommand("windows", url)
	assert.Equal(t, []string{"rundll32", "url.dll,FileProtocolHandler", url}, cmd.Args)

	assert.Equal(t, []string{"open", url}, browserCommand("darwin", url).Args)
	assert.Equal(t, []string{"xdg-open", url}, browserCommand("linux", url).Args)
}

func TestIconIsICO(t *testing.T) {
	data := Icon()
	if assert.Greater(t, len(data), 6) {
		// reserved=0, type=1 (icon)
		assert.Equal(t, []byte{0, 0, 1, 0}, data[:4])
	}
}
