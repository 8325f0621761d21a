package serialization

import (
	"io"
	"math"

	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
	"github.com/kaspanet/powledger/util/binaryserializer"
	"github.com/pkg/errors"
)

// errNoEncodingForType signifies that there's no encoding for the given type.
var errNoEncodingForType = errors.New("there's no encoding for this type")

var errMalformed = errors.New("errMalformed")

// WriteElement writes the little endian representation of element to w.
func WriteElement(w io.Writer, element interface{}) error {
	// Attempt to write the element based on the concrete type via fast
	// type assertions first.
	switch e := element.(type) {
	case uint8:
		return binaryserializer.PutUint8(w, e)

	case uint16:
		return binaryserializer.PutUint16(w, e)

	case uint32:
		return binaryserializer.PutUint32(w, e)

	case int64:
		return binaryserializer.PutUint64(w, uint64(e))

	case uint64:
		return binaryserializer.PutUint64(w, e)

	case *externalapi.DomainHash:
		_, err := w.Write(e.ByteSlice())
		return errors.WithStack(err)

	case *externalapi.DomainTransactionID:
		_, err := w.Write(e.ByteSlice())
		return errors.WithStack(err)
	}

	return errors.Wrapf(errNoEncodingForType, "couldn't find a way to write type %T", element)
}

// WriteElements writes multiple items to w. It is equivalent to multiple
// calls to WriteElement.
func WriteElements(w io.Writer, elements ...interface{}) error {
	for _, element := range elements {
		err := WriteElement(w, element)
		if err != nil {
			return err
		}
	}
	return nil
}

// ReadElement reads the next sequence of bytes from r using little endian
// depending on the concrete type of element pointed to.
func ReadElement(r io.Reader, element interface{}) error {
	switch e := element.(type) {
	case *uint8:
		rv, err := binaryserializer.Uint8(r)
		if err != nil {
			return err
		}
		*e = rv
		return nil

	case *uint16:
		rv, err := binaryserializer.Uint16(r)
		if err != nil {
			return err
		}
		*e = rv
		return nil

	case *uint32:
		rv, err := binaryserializer.Uint32(r)
		if err != nil {
			return err
		}
		*e = rv
		return nil

	case *int64:
		rv, err := binaryserializer.Uint64(r)
		if err != nil {
			return err
		}
		*e = int64(rv)
		return nil

	case *uint64:
		rv, err := binaryserializer.Uint64(r)
		if err != nil {
			return err
		}
		*e = rv
		return nil

	case *externalapi.DomainHash:
		var hashBytes [externalapi.DomainHashSize]byte
		_, err := io.ReadFull(r, hashBytes[:])
		if err != nil {
			return errors.WithStack(err)
		}
		*e = *externalapi.NewDomainHashFromByteArray(&hashBytes)
		return nil
	}

	return errors.Wrapf(errNoEncodingForType, "couldn't find a way to read type %T", element)
}

// ReadElements reads multiple items from r. It is equivalent to multiple
// calls to ReadElement.
func ReadElements(r io.Reader, elements ...interface{}) error {
	for _, element := range elements {
		err := ReadElement(r, element)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteVarInt serializes val to w using a variable number of bytes depending
// on its value.
func WriteVarInt(w io.Writer, val uint64) error {
	switch {
	case val < 0xfd:
		return binaryserializer.PutUint8(w, uint8(val))
	case val <= math.MaxUint16:
		err := binaryserializer.PutUint8(w, 0xfd)
		if err != nil {
			return err
		}
		return binaryserializer.PutUint16(w, uint16(val))
	case val <= math.MaxUint32:
		err := binaryserializer.PutUint8(w, 0xfe)
		if err != nil {
			return err
		}
		return binaryserializer.PutUint32(w, uint32(val))
	default:
		err := binaryserializer.PutUint8(w, 0xff)
		if err != nil {
			return err
		}
		return binaryserializer.PutUint64(w, val)
	}
}

// ReadVarInt reads a variable length integer from r and returns it as a uint64.
// Non canonical encodings are rejected.
func ReadVarInt(r io.Reader) (uint64, error) {
	discriminant, err := binaryserializer.Uint8(r)
	if err != nil {
		return 0, err
	}

	var rv, min uint64
	switch discriminant {
	case 0xff:
		rv, err = binaryserializer.Uint64(r)
		min = 0x100000000
	case 0xfe:
		var sv uint32
		sv, err = binaryserializer.Uint32(r)
		rv, min = uint64(sv), 0x10000
	case 0xfd:
		var sv uint16
		sv, err = binaryserializer.Uint16(r)
		rv, min = uint64(sv), 0xfd
	default:
		return uint64(discriminant), nil
	}
	if err != nil {
		return 0, err
	}
	if rv < min {
		return 0, errors.Wrapf(errMalformed, "non-canonical varint %x - discriminant %x must "+
			"encode a value greater than %x", rv, discriminant, min)
	}
	return rv, nil
}

// VarIntSerializeSize returns the number of bytes it would take to serialize
// val as a variable length integer.
func VarIntSerializeSize(val uint64) int {
	switch {
	case val < 0xfd:
		return 1
	case val <= math.MaxUint16:
		return 3
	case val <= math.MaxUint32:
		return 5
	default:
		return 9
	}
}

// WriteVarBytes serializes a variable length byte array to w as a varInt
// containing the number of bytes, followed by the bytes themselves.
func WriteVarBytes(w io.Writer, bytes []byte) error {
	err := WriteVarInt(w, uint64(len(bytes)))
	if err != nil {
		return err
	}
	_, err = w.Write(bytes)
	return errors.WithStack(err)
}

// ReadVarBytes reads a variable length byte array. An error is returned if
// the length is greater than maxAllowed. The fieldName parameter is only used
// for the error message.
func ReadVarBytes(r io.Reader, maxAllowed uint64, fieldName string) ([]byte, error) {
	count, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if count > maxAllowed {
		return nil, errors.Wrapf(errMalformed, "%s is larger than the max allowed size "+
			"[count %d, max %d]", fieldName, count, maxAllowed)
	}

	b := make([]byte, count)
	_, err = io.ReadFull(r, b)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return b, nil
}

// IsMalformedError returns whether the error indicates a malformed data source
func IsMalformedError(err error) bool {
	return errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) || errors.Is(err, errMalformed)
}

func errMalformedf(format string, args ...interface{}) error {
	return errors.Wrapf(errMalformed, format, args...)
}
