package hoot

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fogfish/opts"
	"github.com/go-openapi/strfmt"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/casualjim/hoot/pkg/reflectx"
	"github.com/casualjim/hoot/pkg/slogx"
	"github.com/casualjim/hoot/pkg/stdx"
	"github.com/casualjim/hoot/pkg/typeid"
	"github.com/casualjim/hoot/pkg/uuidx"
)

var recordJSON = []byte(`{"type":"record"}`)

// Record is one journaled delivery. It captures the payload together with
// enough identity to correlate it later: a time ordered unique ID, the
// journal's own sequence number, and the qualified name and identifier of
// the event type.
type Record struct {
	ID        uuid.UUID       `json:"id"`
	Seq       uint64          `json:"seq"`
	Event     string          `json:"event"`
	TypeID    uint64          `json:"type_id"`
	Payload   gjson.Result    `json:"payload,omitempty"`
	Source    string          `json:"source,omitempty"`
	Timestamp strfmt.DateTime `json:"timestamp,omitempty"`
	Meta      gjson.Result    `json:"meta,omitempty"`
}

// MarshalJSON implements custom JSON marshaling for Record
func (r Record) MarshalJSON() ([]byte, error) {
	result := recordJSON

	var err error
	result, err = sjson.SetBytes(result, "id", r.ID.String())
	if err != nil {
		return nil, err
	}

	result, err = sjson.SetBytes(result, "seq", r.Seq)
	if err != nil {
		return nil, err
	}

	result, err = sjson.SetBytes(result, "event", r.Event)
	if err != nil {
		return nil, err
	}

	result, err = sjson.SetBytes(result, "type_id", r.TypeID)
	if err != nil {
		return nil, err
	}

	if r.Payload.Exists() {
		result, err = sjson.SetRawBytes(result, "payload", []byte(r.Payload.Raw))
		if err != nil {
			return nil, err
		}
	}

	if r.Source != "" {
		result, err = sjson.SetBytes(result, "source", r.Source)
		if err != nil {
			return nil, err
		}
	}

	if !r.Timestamp.IsZero() {
		result, err = sjson.SetBytes(result, "timestamp", r.Timestamp.String())
		if err != nil {
			return nil, err
		}
	}

	if r.Meta.Exists() {
		result, err = sjson.SetRawBytes(result, "meta", []byte(r.Meta.Raw))
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// UnmarshalJSON implements custom JSON unmarshaling for Record
func (r *Record) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid json: %s", data)
	}

	msgType := gjson.GetBytes(data, "type")
	if !msgType.Exists() || msgType.String() != "record" {
		return fmt.Errorf("missing or invalid type, expected 'record'")
	}

	id := gjson.GetBytes(data, "id")
	if !id.Exists() {
		return fmt.Errorf("missing required field 'id'")
	}
	if err := r.ID.UnmarshalText([]byte(id.String())); err != nil {
		return fmt.Errorf("invalid id: %w", err)
	}

	seq := gjson.GetBytes(data, "seq")
	if !seq.Exists() {
		return fmt.Errorf("missing required field 'seq'")
	}
	r.Seq = seq.Uint()

	event := gjson.GetBytes(data, "event")
	if !event.Exists() {
		return fmt.Errorf("missing required field 'event'")
	}
	r.Event = event.String()

	typeID := gjson.GetBytes(data, "type_id")
	if !typeID.Exists() {
		return fmt.Errorf("missing required field 'type_id'")
	}
	r.TypeID = typeID.Uint()

	if payload := gjson.GetBytes(data, "payload"); payload.Exists() {
		r.Payload = payload
	}

	if source := gjson.GetBytes(data, "source"); source.Exists() {
		r.Source = source.String()
	}

	if timestamp := gjson.GetBytes(data, "timestamp"); timestamp.Exists() {
		if err := r.Timestamp.UnmarshalText([]byte(timestamp.String())); err != nil {
			return fmt.Errorf("invalid timestamp: %w", err)
		}
	}

	if meta := gjson.GetBytes(data, "meta"); meta.Exists() {
		r.Meta = meta
	}

	return nil
}

// Journal is a Processor that appends one JSON record per delivery to a
// writer. It is meant to be shared: subscribe the same journal to any number
// of event types through SubscribeProcessor and every delivery lands in the
// same stream in sequence order.
//
// The journal only ever writes. Serialization or write failures are logged
// and the record is dropped, emitters never observe them.
type Journal struct {
	writer io.Writer
	source string
	meta   gjson.Result
	clock  func() time.Time
	log    *slog.Logger
	seq    atomic.Uint64
	mu     sync.Mutex
}

// JournalSource tags every record with the origin of its events.
var JournalSource = opts.ForName[Journal, string]("source")

// JournalMeta attaches a raw JSON document to every record.
func JournalMeta(raw string) opts.Option[Journal] {
	return opts.Type[Journal](func(j *Journal) error {
		if !gjson.Valid(raw) {
			return fmt.Errorf("journal meta is not valid json: %s", raw)
		}
		j.meta = gjson.Parse(raw)
		return nil
	})
}

// JournalClock overrides the timestamp source, mostly for tests.
func JournalClock(clock func() time.Time) opts.Option[Journal] {
	return opts.Type[Journal](func(j *Journal) error {
		if clock == nil {
			return errors.New("journal clock cannot be nil")
		}
		j.clock = clock
		return nil
	})
}

// NewJournal creates a journal writing to w.
func NewJournal(w io.Writer, options ...opts.Option[Journal]) (*Journal, error) {
	if w == nil {
		return nil, errors.New("journal writer is required")
	}

	j := &Journal{
		writer: w,
		clock:  time.Now,
		log:    slog.Default().With(slogx.LoggerName("hoot.journal")),
	}
	if err := opts.Apply(j, options); err != nil {
		return nil, err
	}
	return j, nil
}

// MustJournal is NewJournal but panics on error.
func MustJournal(w io.Writer, options ...opts.Option[Journal]) *Journal {
	return stdx.Must1(NewJournal(w, options...))
}

// Process serializes the payload and appends it as a single line. Writes are
// serialized and the sequence number is assigned in write order, so one
// journal can be subscribed on several dispatchers at once without
// interleaving lines or reordering records.
func (j *Journal) Process(event any) {
	rec, err := j.record(event)
	if err != nil {
		j.log.Error("dropping record", slogx.Error(err))
		return
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	rec.Seq = j.seq.Add(1)
	line, err := json.Marshal(rec)
	if err != nil {
		j.log.Error("dropping record", slogx.Error(err))
		return
	}
	if _, err := j.writer.Write(append(line, '\n')); err != nil {
		j.log.Error("write failed", slogx.Error(err), slogx.Stringer("id", rec.ID))
	}
}

func (j *Journal) record(event any) (Record, error) {
	if event == nil {
		return Record{}, errors.New("nil event payload")
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return Record{}, fmt.Errorf("marshal payload: %w", err)
	}

	t := reflectx.Deref(reflect.TypeOf(event))
	return Record{
		ID:        uuidx.New(),
		Event:     reflectx.QualifiedName(t),
		TypeID:    typeid.OfType(t),
		Payload:   gjson.ParseBytes(payload),
		Source:    j.source,
		Timestamp: strfmt.DateTime(j.clock()),
		Meta:      j.meta,
	}, nil
}

// Seq returns the number of records the journal has produced so far,
// including any that were dropped on write failure.
func (j *Journal) Seq() uint64 {
	return j.seq.Load()
}
