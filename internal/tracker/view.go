package tracker

import (
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
)

// timeLayout matches the classic Unix date(1) output.
const timeLayout = "Mon Jan 02 15:04:05 MST 2006"

// PageView renders p as an HTML document. Every dynamic value is escaped.
func PageView(p Page) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder

		b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
		b.WriteString("<meta charset=\"utf-8\">\n")
		b.WriteString("<title>" + templ.EscapeString(p.Title) + "</title>\n")
		b.WriteString("</head>\n<body>\n")
		b.WriteString("<font size='12'>" + templ.EscapeString(p.Title) + "</font><br><br>\n")

		b.WriteString("<hr>\n")
		b.WriteString("Number of Visits = <font size='14'>" + strconv.Itoa(p.Visits) + "</font><br>\n")
		b.WriteString("Session ID = " + templ.EscapeString(p.SessionID) + "<br>\n")
		b.WriteString("Session Creation Time = " + formatTime(p.CreatedAt) + "<br>\n")
		b.WriteString("Session Last Access Time = " + formatTime(p.LastAccessedAt) + "<br>\n")
		b.WriteString("Your IP Address = " + templ.EscapeString(p.ClientIP) + "<br>\n")

		b.WriteString("<br>\n<hr>\n<br><br><br>\n")
		for _, v := range p.Env {
			b.WriteString(templ.EscapeString(v.Name) + " = " + templ.EscapeString(v.Value) + "<br>\n")
		}

		b.WriteString("<hr>\n")
		b.WriteString("Go Version = " + templ.EscapeString(p.Runtime.GoVersion) + "<br>\n")
		b.WriteString("Go Compiler = " + templ.EscapeString(p.Runtime.Compiler) + "<br>\n")
		b.WriteString("Platform = " + templ.EscapeString(p.Runtime.Platform()) + "<br>\n")
		if p.Runtime.Module != "" {
			b.WriteString("Module = " + templ.EscapeString(p.Runtime.Module) + " " + templ.EscapeString(p.Runtime.ModuleVersion) + "<br>\n")
		}
		b.WriteString("<hr>\n")
		b.WriteString("</body>\n</html>\n")

		_, err := io.WriteString(w, b.String())
		return err
	})
}

func formatTime(t time.Time) string {
	return templ.EscapeString(t.Format(timeLayout))
}
