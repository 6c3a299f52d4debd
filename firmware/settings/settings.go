//go:build tinygo

// Package settings persists key/value settings in the last usable flash
// erase block. The record is a plain text header plus key=value lines,
// so a corrupted or never-written block simply fails the header check
// and the device falls back to defaults.
package settings

import (
	"bytes"
	"errors"
	"machine"
	"strconv"
)

const magic = "STICKKEYS1\n"

// Flash loads the whole record into memory at startup; writes rewrite
// the block. Values are stored as strings so one format handles ints and
// floats alike.
type Flash struct {
	vals map[string]string
}

func NewFlash() *Flash {
	f := &Flash{vals: map[string]string{}}
	f.load()
	return f
}

func (f *Flash) load() {
	size := machine.Flash.EraseBlockSize()
	buf := make([]byte, size)
	if _, err := machine.Flash.ReadAt(buf, 0); err != nil {
		return
	}
	if !bytes.HasPrefix(buf, []byte(magic)) {
		return
	}

	for _, line := range bytes.Split(buf[len(magic):], []byte{'\n'}) {
		if len(line) == 0 || line[0] == 0xFF {
			break
		}
		k, v, ok := bytes.Cut(line, []byte{'='})
		if !ok {
			continue
		}
		f.vals[string(k)] = string(v)
	}
}

func (f *Flash) flush() error {
	size := machine.Flash.EraseBlockSize()

	buf := make([]byte, 0, 256)
	buf = append(buf, magic...)
	for k, v := range f.vals {
		buf = append(buf, k...)
		buf = append(buf, '=')
		buf = append(buf, v...)
		buf = append(buf, '\n')
	}
	if int64(len(buf)) > size {
		return errors.New("settings record exceeds erase block")
	}

	// pad to the write granularity with erased bytes
	wb := int(machine.Flash.WriteBlockSize())
	for len(buf)%wb != 0 {
		buf = append(buf, 0xFF)
	}

	if err := machine.Flash.EraseBlocks(0, 1); err != nil {
		return err
	}
	_, err := machine.Flash.WriteAt(buf, 0)
	return err
}

func (f *Flash) GetInt(key string, def int) int {
	s, ok := f.vals[key]
	if !ok {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func (f *Flash) GetFloat(key string, def float64) float64 {
	s, ok := f.vals[key]
	if !ok {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}

func (f *Flash) PutInt(key string, v int) error {
	return f.put(key, strconv.Itoa(v))
}

func (f *Flash) PutFloat(key string, v float64) error {
	return f.put(key, strconv.FormatFloat(v, 'f', -1, 64))
}

// put skips the erase cycle when the value is already stored.
func (f *Flash) put(key, val string) error {
	if f.vals[key] == val {
		return nil
	}
	f.vals[key] = val
	return f.flush()
}
