package live

// Accumulator batches raw audio fragments into segments large enough to
// transcribe. Browser recorders only write the container header into the
// very first fragment, so that header is retained and prepended to every
// segment after the first accepted one to keep later segments decodable.
//
// Accumulator is not safe for concurrent use; the owning coordinator
// serializes access.
type Accumulator struct {
	batchSize int
	minBytes  int

	pending  [][]byte
	header   []byte
	accepted bool
}

// NewAccumulator creates an accumulator that assembles a segment every
// batchSize fragments and discards assembled segments smaller than minBytes.
func NewAccumulator(batchSize, minBytes int) *Accumulator {
	if batchSize <= 0 {
		batchSize = 10
	}
	return &Accumulator{
		batchSize: batchSize,
		minBytes:  minBytes,
	}
}

// Submit adds one fragment. When the pending count reaches the batch size it
// assembles and returns a segment; otherwise it returns nil. Segments below
// the minimum size are dropped as recorder noise and nil is returned.
func (a *Accumulator) Submit(fragment []byte) []byte {
	if len(fragment) > 0 && a.header == nil {
		a.header = append([]byte(nil), fragment...)
	}
	a.pending = append(a.pending, fragment)

	if len(a.pending) < a.batchSize {
		return nil
	}
	return a.assemble()
}

// Flush assembles whatever fragments are pending, regardless of count. It
// returns nil when nothing useful is buffered.
func (a *Accumulator) Flush() []byte {
	if len(a.pending) == 0 {
		return nil
	}
	return a.assemble()
}

// Pending reports the number of buffered fragments.
func (a *Accumulator) Pending() int {
	return len(a.pending)
}

func (a *Accumulator) assemble() []byte {
	var size int
	for _, f := range a.pending {
		size += len(f)
	}

	segment := make([]byte, 0, size+len(a.header))
	for _, f := range a.pending {
		segment = append(segment, f...)
	}
	a.pending = nil

	// Too small to contain real speech; the recorder emits tiny blobs when
	// the microphone is muted or just starting up.
	if len(segment) < a.minBytes {
		return nil
	}

	if a.accepted {
		segment = append(append([]byte(nil), a.header...), segment...)
	}
	a.accepted = true
	return segment
}
