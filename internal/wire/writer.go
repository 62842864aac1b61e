package wire

import (
	"bytes"
	"encoding/binary"
	"math"
	"sync"
)

// Writer accumulates a canonical little-endian encoding of one message.
// Grounded on the teacher's packet.Writer.
type Writer struct {
	buf *bytes.Buffer
}

var writerPool = sync.Pool{
	New: func() any {
		return &Writer{buf: bytes.NewBuffer(make([]byte, 0, 256))}
	},
}

// GetWriter returns a reset Writer from the pool.
func GetWriter() *Writer {
	w := writerPool.Get().(*Writer)
	w.buf.Reset()
	return w
}

// Put returns w to the pool. w must not be used afterward.
func (w *Writer) Put() { writerPool.Put(w) }

// NewWriter creates a standalone Writer, bypassing the pool.
func NewWriter(capacity int) *Writer {
	return &Writer{buf: bytes.NewBuffer(make([]byte, 0, capacity))}
}

func (w *Writer) WriteUint8(v uint8) { w.buf.WriteByte(v) }

func (w *Writer) WriteBool(v bool) {
	if v {
		w.buf.WriteByte(1)
	} else {
		w.buf.WriteByte(0)
	}
}

func (w *Writer) WriteUint16(v uint16) {
	w.buf.WriteByte(byte(v))
	w.buf.WriteByte(byte(v >> 8))
}

func (w *Writer) WriteUint32(v uint32) {
	w.buf.WriteByte(byte(v))
	w.buf.WriteByte(byte(v >> 8))
	w.buf.WriteByte(byte(v >> 16))
	w.buf.WriteByte(byte(v >> 24))
}

func (w *Writer) WriteUint64(v uint64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	w.buf.Write(tmp[:])
}

func (w *Writer) WriteFloat64(v float64) { w.WriteUint64(math.Float64bits(v)) }

// WriteString writes a uint16 byte-length prefix followed by the UTF-8
// bytes (see the package doc for why this departs from the teacher's
// null-terminated UTF-16LE).
func (w *Writer) WriteString(s string) {
	w.WriteUint16(uint16(len(s)))
	w.buf.WriteString(s)
}

// WriteBytes writes a uint16 length prefix followed by raw bytes.
func (w *Writer) WriteBytes(b []byte) {
	w.WriteUint16(uint16(len(b)))
	w.buf.Write(b)
}

func (w *Writer) Bytes() []byte { return w.buf.Bytes() }
func (w *Writer) Len() int      { return w.buf.Len() }
