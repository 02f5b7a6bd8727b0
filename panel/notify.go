package panel

import "time"

// Notification timings
const (
	NotifyVisible = 3000 * time.Millisecond
	NotifyFade    = 300 * time.Millisecond
)

// User-facing outcome messages
const (
	MsgSelectOK   = "Pattern selected successfully"
	MsgSelectFail = "Error selecting pattern"
	MsgSaveOK     = "Pattern saved successfully"
	MsgSaveFail   = "Error saving pattern"
)

// NotifyKind is the style of a notification
type NotifyKind int

const (
	NotifySuccess NotifyKind = iota
	NotifyError
)

// Notification is a transient message. Leaving is set once the visible period
// ends; it is removed after the fade.
type Notification struct {
	ID      int
	Text    string
	Kind    NotifyKind
	Leaving bool
}

// Notifications is an uncapped stack of transient messages, oldest first
type Notifications struct {
	nextID int
	items  []Notification
}

// Push adds a notification and returns its id
func (n *Notifications) Push(text string, kind NotifyKind) int {
	n.nextID++
	n.items = append(n.items, Notification{ID: n.nextID, Text: text, Kind: kind})
	return n.nextID
}

// Hide marks a notification as leaving
func (n *Notifications) Hide(id int) bool {
	for i := range n.items {
		if n.items[i].ID == id {
			n.items[i].Leaving = true
			return true
		}
	}
	return false
}

// Remove deletes a notification
func (n *Notifications) Remove(id int) bool {
	for i := range n.items {
		if n.items[i].ID == id {
			n.items = append(n.items[:i], n.items[i+1:]...)
			return true
		}
	}
	return false
}

// Items returns the current notifications, oldest first
func (n *Notifications) Items() []Notification {
	return append([]Notification(nil), n.items...)
}

// Len returns the number of notifications on screen
func (n *Notifications) Len() int {
	return len(n.items)
}

// Last returns the newest notification
func (n *Notifications) Last() (Notification, bool) {
	if len(n.items) == 0 {
		return Notification{}, false
	}
	return n.items[len(n.items)-1], true
}
