package logging

import "log/slog"

// Canonical log field names.
const (
	KeyMethod     = "method"
	KeyPath       = "path"
	KeyRoute      = "route"
	KeyStatus     = "status"
	KeyRequestID  = "request_id"
	KeyRemoteAddr = "remote_addr"
	KeyUserAgent  = "user_agent"
	KeyTemplate   = "template"
	KeyBlock      = "block"
	KeyContactID  = "contact_id"
	KeyCount      = "count"
	KeyError      = "error"
)

func Method(m string) slog.Attr     { return slog.String(KeyMethod, m) }
func Path(p string) slog.Attr       { return slog.String(KeyPath, p) }
func Route(r string) slog.Attr      { return slog.String(KeyRoute, r) }
func Status(code int) slog.Attr     { return slog.Int(KeyStatus, code) }
func RequestID(id string) slog.Attr { return slog.String(KeyRequestID, id) }
func RemoteAddr(a string) slog.Attr { return slog.String(KeyRemoteAddr, a) }
func UserAgent(ua string) slog.Attr { return slog.String(KeyUserAgent, ua) }
func Template(n string) slog.Attr   { return slog.String(KeyTemplate, n) }
func Block(n string) slog.Attr      { return slog.String(KeyBlock, n) }
func ContactID(id uint64) slog.Attr { return slog.Uint64(KeyContactID, id) }
func Count(v uint64) slog.Attr      { return slog.Uint64(KeyCount, v) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
