package progress

import (
	"github.com/sirupsen/logrus"
	"github.com/ytget/yt-downloader-web/internal/model"
)

// Sink delivers one event to the client
type Sink interface {
	Send(ev Event) error
}

// Emitter orders events for one session: any number of progress and merging
// frames, then exactly one complete or error frame. Delivery is at most once;
// after the first failed write every later event is dropped.
//
// The engine reports "finished" once per fetched stream, so a finished
// callback only marks a merge as pending. It becomes a merging frame when post
// processing starts or the download completes, and is discarded when another
// stream starts downloading.
type Emitter struct {
	sink     Sink
	log      *logrus.Entry
	last     EventType
	pending  bool
	finished bool
	broken   bool
	sent     int
}

// NewEmitter creates an emitter writing to sink
func NewEmitter(sink Sink, log *logrus.Entry) *Emitter {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Emitter{sink: sink, log: log}
}

// OnProgress handles one engine callback; it satisfies model.ProgressFunc
func (e *Emitter) OnProgress(update model.ProgressUpdate) {
	switch update.Status {
	case model.ProgressStatusDownloading:
		e.pending = false
		e.emit(NewProgressEvent(update))
	case model.ProgressStatusFinished:
		e.pending = true
	case model.ProgressStatusPostProcessing:
		e.pending = false
		e.emit(NewMergingEvent())
	}
}

// Complete sends the terminal success frame, preceded by a pending merge
func (e *Emitter) Complete(result model.DownloadResult) {
	if e.pending {
		e.pending = false
		e.emit(NewMergingEvent())
	}
	e.emit(NewCompleteEvent(result))
}

// Fail sends the terminal error frame
func (e *Emitter) Fail(err error) {
	e.pending = false
	e.emit(NewErrorEvent(err))
}

// Finished reports whether a terminal event was produced
func (e *Emitter) Finished() bool {
	return e.finished
}

// Broken reports whether the sink failed and delivery stopped
func (e *Emitter) Broken() bool {
	return e.broken
}

// Sent returns the number of frames written successfully
func (e *Emitter) Sent() int {
	return e.sent
}

func (e *Emitter) emit(ev Event) {
	if e.finished {
		return
	}
	kind := ev.Kind()
	if kind == TypeMerging && e.last == TypeMerging {
		return
	}
	e.last = kind
	e.finished = Terminal(ev)

	if e.broken {
		return
	}
	if err := e.sink.Send(ev); err != nil {
		e.broken = true
		e.log.WithError(err).Info("client went away, dropping further events")
		return
	}
	e.sent++
}
