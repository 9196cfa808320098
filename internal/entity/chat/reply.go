package chat

type Button struct {
	Text string
	Data string
}

// Keyboard is attached to a reply. Inline keyboards send Data back as a
// callback, reply keyboards send the button Text as a plain message.
type Keyboard struct {
	Inline bool
	Remove bool
	Rows   [][]Button
}

type Reply struct {
	ChatID   int64
	Text     string
	Keyboard *Keyboard
}
