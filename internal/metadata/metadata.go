// Package metadata persists the bitmap, file table and free-byte counter
// into the reserved tail region of the backing image, in the teacher's
// framed-binary-plus-CRC32 style (see wal.Log.Encode/Decode).
package metadata

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"io"

	"github.com/agar64/University-OS-Assignment02/internal/bitmap"
	"github.com/agar64/University-OS-Assignment02/internal/fserr"
	"github.com/agar64/University-OS-Assignment02/internal/filetable"
)

// Reserve is the size of the metadata region at the tail of the image
// (META_RESERVE).
const Reserve = 1 << 20 // 1 MiB

const magic = uint32(0xD15C0401)
const version = uint32(1)

// State is everything persisted across open/close cycles.
type State struct {
	FreeBytes uint64
	Entries   []filetable.Entry
	Bitmap    *bitmap.Bitmap
}

// Encode serialises state into exactly Reserve bytes, padding with zeroes.
// It returns an IoError if the serialised form does not fit.
func Encode(state State) ([]byte, error) {
	var body bytes.Buffer

	if err := binary.Write(&body, binary.LittleEndian, magic); err != nil {
		return nil, fserr.Wrap("metadata.Encode", "", err)
	}
	if err := binary.Write(&body, binary.LittleEndian, version); err != nil {
		return nil, fserr.Wrap("metadata.Encode", "", err)
	}
	if err := binary.Write(&body, binary.LittleEndian, state.FreeBytes); err != nil {
		return nil, fserr.Wrap("metadata.Encode", "", err)
	}
	if err := binary.Write(&body, binary.LittleEndian, uint32(len(state.Entries))); err != nil {
		return nil, fserr.Wrap("metadata.Encode", "", err)
	}

	for _, e := range state.Entries {
		if err := binary.Write(&body, binary.LittleEndian, uint16(len(e.Name))); err != nil {
			return nil, fserr.Wrap("metadata.Encode", "", err)
		}
		if _, err := body.WriteString(e.Name); err != nil {
			return nil, fserr.Wrap("metadata.Encode", "", err)
		}
		if err := binary.Write(&body, binary.LittleEndian, e.SizeBytes); err != nil {
			return nil, fserr.Wrap("metadata.Encode", "", err)
		}
		if err := binary.Write(&body, binary.LittleEndian, e.StartOffset); err != nil {
			return nil, fserr.Wrap("metadata.Encode", "", err)
		}
	}

	if _, err := state.Bitmap.WriteTo(&body); err != nil {
		return nil, fserr.Wrap("metadata.Encode", "", err)
	}

	buf := make([]byte, Reserve)
	n := copy(buf, body.Bytes())
	if n < body.Len() {
		return nil, fserr.New(fserr.IoError, "metadata.Encode", "metadata region overflow")
	}

	crc := crc32.ChecksumIEEE(buf[:Reserve-4])
	binary.LittleEndian.PutUint32(buf[Reserve-4:], crc)

	return buf, nil
}

// Decode parses a metadata region previously produced by Encode, into a
// fresh bitmap sized for numBlocks.
func Decode(buf []byte, numBlocks uint) (State, error) {
	if len(buf) != Reserve {
		return State{}, fserr.New(fserr.IoError, "metadata.Decode", "short metadata region")
	}

	storedCRC := binary.LittleEndian.Uint32(buf[Reserve-4:])
	body := buf[:Reserve-4]

	r := bytes.NewReader(body)

	var gotMagic, gotVersion uint32
	if err := binary.Read(r, binary.LittleEndian, &gotMagic); err != nil {
		return State{}, fserr.Wrap("metadata.Decode", "", err)
	}
	if gotMagic != magic {
		return State{}, fserr.New(fserr.IoError, "metadata.Decode", "bad magic")
	}
	if err := binary.Read(r, binary.LittleEndian, &gotVersion); err != nil {
		return State{}, fserr.Wrap("metadata.Decode", "", err)
	}
	if gotVersion != version {
		return State{}, fserr.New(fserr.IoError, "metadata.Decode", "unsupported version")
	}

	var state State
	if err := binary.Read(r, binary.LittleEndian, &state.FreeBytes); err != nil {
		return State{}, fserr.Wrap("metadata.Decode", "", err)
	}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return State{}, fserr.Wrap("metadata.Decode", "", err)
	}

	state.Entries = make([]filetable.Entry, 0, count)
	for i := uint32(0); i < count; i++ {
		var nameLen uint16
		if err := binary.Read(r, binary.LittleEndian, &nameLen); err != nil {
			return State{}, fserr.Wrap("metadata.Decode", "", err)
		}
		name := make([]byte, nameLen)
		if _, err := io.ReadFull(r, name); err != nil {
			return State{}, fserr.Wrap("metadata.Decode", "", err)
		}

		var e filetable.Entry
		e.Name = string(name)
		if err := binary.Read(r, binary.LittleEndian, &e.SizeBytes); err != nil {
			return State{}, fserr.Wrap("metadata.Decode", "", err)
		}
		if err := binary.Read(r, binary.LittleEndian, &e.StartOffset); err != nil {
			return State{}, fserr.Wrap("metadata.Decode", "", err)
		}
		state.Entries = append(state.Entries, e)
	}

	state.Bitmap = bitmap.New(numBlocks)
	if _, err := state.Bitmap.ReadFrom(r); err != nil {
		return State{}, fserr.Wrap("metadata.Decode", "", err)
	}

	if crc32.ChecksumIEEE(body) != storedCRC {
		return State{}, fserr.New(fserr.IoError, "metadata.Decode", "checksum mismatch")
	}

	return state, nil
}

// IsFreshImage reports whether buf is an all-zero metadata region, i.e. a
// freshly created image with no persisted state yet.
func IsFreshImage(buf []byte) bool {
	for _, b := range buf {
		if b != 0 {
			return false
		}
	}
	return true
}
