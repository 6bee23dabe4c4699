package qrng

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of the batch record message:
//
//	message Batch {
//	  int32 mode = 1;
//	  repeated string samples = 2;
//	  double entropy = 3;
//	  double char_entropy = 4;
//	}
const (
	fieldMode        protowire.Number = 1
	fieldSamples     protowire.Number = 2
	fieldEntropy     protowire.Number = 3
	fieldCharEntropy protowire.Number = 4
)

// maxFrame bounds the length prefix a BatchReader will allocate for.
const maxFrame = 64 << 20

// A BatchWriter appends framed batch records to the wire. The structure of the
// frame is trivial: int32 LE length | protobuf message.
type BatchWriter struct {
	w io.Writer
}

func NewBatchWriter(w io.Writer) *BatchWriter {
	return &BatchWriter{w: w}
}

func (b *BatchWriter) Write(r Result) error {
	msg := marshalResult(r)
	if err := binary.Write(b.w, binary.LittleEndian, int32(len(msg))); err != nil {
		return err
	}
	_, err := b.w.Write(msg)
	return err
}

// A BatchReader reads frames written by a BatchWriter.
type BatchReader struct {
	r io.Reader
}

func NewBatchReader(r io.Reader) *BatchReader {
	return &BatchReader{r: r}
}

// Read returns the next record, or io.EOF once the stream ends cleanly.
func (b *BatchReader) Read() (Result, error) {
	var mLen int32
	if err := binary.Read(b.r, binary.LittleEndian, &mLen); err != nil {
		return Result{}, err
	}
	if mLen < 0 || mLen > maxFrame {
		return Result{}, errors.Errorf("invalid frame length %d", mLen)
	}
	msg := make([]byte, mLen)
	if _, err := io.ReadFull(b.r, msg); err != nil {
		return Result{}, errors.Wrap(err, "reading frame")
	}
	return unmarshalResult(msg)
}

func marshalResult(r Result) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldMode, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(r.Batch.Mode))
	for _, s := range r.Batch.Samples {
		b = protowire.AppendTag(b, fieldSamples, protowire.BytesType)
		b = protowire.AppendString(b, s)
	}
	b = protowire.AppendTag(b, fieldEntropy, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, math.Float64bits(r.Entropy))
	b = protowire.AppendTag(b, fieldCharEntropy, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, math.Float64bits(r.CharEntropy))
	return b
}

func unmarshalResult(b []byte) (Result, error) {
	var r Result
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return Result{}, errors.Wrap(protowire.ParseError(n), "reading tag")
		}
		b = b[n:]
		switch {
		case num == fieldMode && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return Result{}, errors.Wrap(protowire.ParseError(n), "reading mode")
			}
			r.Batch.Mode = Mode(v)
			b = b[n:]
		case num == fieldSamples && typ == protowire.BytesType:
			s, n := protowire.ConsumeString(b)
			if n < 0 {
				return Result{}, errors.Wrap(protowire.ParseError(n), "reading sample")
			}
			r.Batch.Samples = append(r.Batch.Samples, s)
			b = b[n:]
		case num == fieldEntropy && typ == protowire.Fixed64Type:
			v, n := protowire.ConsumeFixed64(b)
			if n < 0 {
				return Result{}, errors.Wrap(protowire.ParseError(n), "reading entropy")
			}
			r.Entropy = math.Float64frombits(v)
			b = b[n:]
		case num == fieldCharEntropy && typ == protowire.Fixed64Type:
			v, n := protowire.ConsumeFixed64(b)
			if n < 0 {
				return Result{}, errors.Wrap(protowire.ParseError(n), "reading char entropy")
			}
			r.CharEntropy = math.Float64frombits(v)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return Result{}, errors.Wrapf(protowire.ParseError(n), "skipping field %d", num)
			}
			b = b[n:]
		}
	}
	return r, nil
}
