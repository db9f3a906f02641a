package logx

// discard drops every entry.
type discard struct{}

var nop Logger = discard{}

// Nop returns a Logger that drops every entry.
func Nop() Logger { return nop }

// OrNop returns l, or Nop when l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return nop
	}
	return l
}

func (discard) Debug(string, ...Field) {}
func (discard) Info(string, ...Field)  {}
func (discard) Warn(string, ...Field)  {}
func (discard) Error(string, ...Field) {}
func (discard) With(...Field) Logger   { return nop }
func (discard) Sync() error            { return nil }
