package chat

// Message is one entry of a conversation thread. Threads are append-only:
// no edits, no deletes, ordering is insertion order.
type Message struct {
	ID     int    `json:"id"`
	Sender string `json:"sender"`
	Text   string `json:"text"`
	Time   string `json:"time"`
	IsUser bool   `json:"isUser"`
}

// ThreadInfo describes one conversation tab.
type ThreadInfo struct {
	ID       string
	Title    string
	Scripted bool
}

const (
	// ThreadShop is the only thread wired to the scripted auto-reply; the
	// other two are static placeholders without send capability.
	ThreadShop        = "chat1"
	ThreadGadgetStore = "chat2"
	ThreadSportLife   = "chat3"
)
