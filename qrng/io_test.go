package qrng

import (
	"bytes"
	"errors"
	"io"
	"reflect"
	"testing"
)

func TestBatchWriteRead(t *testing.T) {
	results := []Result{
		{
			Batch:       Batch{Mode: ModePattern, Samples: []string{"12e", "40q", "77a"}},
			Entropy:     1.584962500721156,
			CharEntropy: 2.94,
		}, {
			Batch: Batch{Mode: ModeBitstring, Samples: []string{"10110011"}},
		},
	}
	var buf bytes.Buffer
	w := NewBatchWriter(&buf)
	for _, r := range results {
		if err := w.Write(r); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}

	rd := NewBatchReader(&buf)
	for i, want := range results {
		got, err := rd.Read()
		if err != nil {
			t.Fatalf("Read %d: %v", i, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("record %d mangled: got %+v, want %+v", i, got, want)
		}
	}
	if _, err := rd.Read(); !errors.Is(err, io.EOF) {
		t.Errorf("Read past end == %v, want io.EOF", err)
	}
}

func TestBatchReadTruncated(t *testing.T) {
	var buf bytes.Buffer
	if err := NewBatchWriter(&buf).Write(Result{Batch: Batch{Samples: []string{"abc"}}}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data := buf.Bytes()[:buf.Len()-3]
	if _, err := NewBatchReader(bytes.NewReader(data)).Read(); err == nil {
		t.Errorf("Read of truncated frame succeeded, want error")
	}
}

func TestBatchReadSkipsUnknownFields(t *testing.T) {
	// Field 9, varint 5, followed by a sample.
	msg := []byte{9 << 3, 5, 2<<3 | 2, 2, 'o', 'k'}
	var buf bytes.Buffer
	buf.Write([]byte{byte(len(msg)), 0, 0, 0})
	buf.Write(msg)
	r, err := NewBatchReader(&buf).Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !reflect.DeepEqual(r.Batch.Samples, []string{"ok"}) {
		t.Errorf("samples == %v, want [ok]", r.Batch.Samples)
	}
}
