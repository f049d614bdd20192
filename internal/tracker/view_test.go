package tracker_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pagevisits/internal/tracker"
)

func TestPageView(t *testing.T) {
	t.Parallel()

	created := time.Date(2024, time.March, 5, 9, 4, 5, 0, time.UTC)
	page := tracker.Page{
		Title:          `Visits & "more"`,
		Visits:         3,
		SessionID:      "<id>",
		CreatedAt:      created,
		LastAccessedAt: created.Add(time.Minute),
		ClientIP:       "203.0.113.7",
		Env:            []tracker.EnvVar{{Name: "WEBSITE_NAME", Value: "<i>x</i>"}},
		Runtime:        tracker.RuntimeInfo{GoVersion: "go1.24.0", Compiler: "gc", OS: "linux", Arch: "amd64", Module: "example.com/m", ModuleVersion: "v1.0.0"},
	}

	var buf bytes.Buffer
	require.NoError(t, tracker.PageView(page).Render(context.Background(), &buf))
	body := buf.String()

	assert.Contains(t, body, "<title>Visits &amp; &#34;more&#34;</title>")
	assert.Contains(t, body, "Number of Visits = <font size='14'>3</font>")
	assert.Contains(t, body, "Session ID = &lt;id&gt;<br>")
	assert.Contains(t, body, "Session Creation Time = Tue Mar 05 09:04:05 UTC 2024<br>")
	assert.Contains(t, body, "Session Last Access Time = Tue Mar 05 09:05:05 UTC 2024<br>")
	assert.Contains(t, body, "Your IP Address = 203.0.113.7<br>")
	assert.Contains(t, body, "WEBSITE_NAME = &lt;i&gt;x&lt;/i&gt;<br>")
	assert.Contains(t, body, "Module = example.com/m v1.0.0<br>")
	assert.NotContains(t, body, "<i>x</i>")
}
