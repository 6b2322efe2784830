package notify

import (
	"fmt"
	"io"
	"sync"
	"time"

	"fyne.io/fyne/v2"
)

// FyneSender shows desktop notifications through a fyne application.
// Fyne notifications carry no sound, so SoundID is only logged by the Dispatcher.
type FyneSender struct {
	App fyne.App
}

func (sender FyneSender) Send(request Request) error {
	if sender.App == nil {
		return fmt.Errorf("fyne sender: no application")
	}
	notification := fyne.NewNotification(request.Title, request.Body)
	fyne.Do(func() {
		sender.App.SendNotification(notification)
	})
	return nil
}

// WriterSender prints notifications as lines, optionally ringing the terminal bell.
type WriterSender struct {
	mu   sync.Mutex
	out  io.Writer
	bell bool
	now  func() time.Time
}

// NewWriterSender writes to out.
func NewWriterSender(out io.Writer, bell bool) *WriterSender {
	return &WriterSender{out: out, bell: bell, now: time.Now}
}

func (sender *WriterSender) Send(request Request) error {
	sender.mu.Lock()
	defer sender.mu.Unlock()

	prefix := ""
	if sender.bell {
		prefix = "\a"
	}
	_, err := fmt.Fprintf(sender.out, "%s[%s] %s: %s\n",
		prefix, sender.now().Format("15:04:05"), request.Title, request.Body)
	return err
}
