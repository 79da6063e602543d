package store

import (
	"bytes"
	"encoding/binary"

	bolt "go.etcd.io/bbolt"

	. "src.ember.sh/pkg/store/storedefs"
)

// Commands are keyed by their big-endian sequence number, so that cursor
// order is sequence order.
const bucketCmd = "cmd"

func init() {
	initDB["initialize command history bucket"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketCmd))
		return err
	}
}

func (s *dbStore) viewCmds(f func(b *bolt.Bucket) error) error {
	return s.db.View(func(tx *bolt.Tx) error { return f(tx.Bucket([]byte(bucketCmd))) })
}

func (s *dbStore) updateCmds(f func(b *bolt.Bucket) error) error {
	return s.db.Update(func(tx *bolt.Tx) error { return f(tx.Bucket([]byte(bucketCmd))) })
}

// NextCmdSeq returns the sequence number the next added command will get.
func (s *dbStore) NextCmdSeq() (int, error) {
	var seq uint64
	err := s.viewCmds(func(b *bolt.Bucket) error {
		seq = b.Sequence() + 1
		return nil
	})
	return int(seq), err
}

// AddCmd appends a command to the history and returns its sequence number.
func (s *dbStore) AddCmd(text string) (int, error) {
	var seq uint64
	err := s.updateCmds(func(b *bolt.Bucket) error {
		var err error
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), []byte(text))
	})
	if err != nil {
		logger.Println("failed to add command:", err)
	}
	return int(seq), err
}

// DelCmd deletes the command with the given sequence number. Deleting a
// nonexistent command is not an error.
func (s *dbStore) DelCmd(seq int) error {
	return s.updateCmds(func(b *bolt.Bucket) error {
		return b.Delete(marshalSeq(uint64(seq)))
	})
}

// Cmd returns the text of the command with the given sequence number.
func (s *dbStore) Cmd(seq int) (string, error) {
	var text string
	err := s.viewCmds(func(b *bolt.Bucket) error {
		v := b.Get(marshalSeq(uint64(seq)))
		if v == nil {
			return ErrNoMatchingCmd
		}
		text = string(v)
		return nil
	})
	return text, err
}

// CmdsWithSeq returns all commands with from <= seq < upto, in order.
func (s *dbStore) CmdsWithSeq(from, upto int) ([]Cmd, error) {
	var cmds []Cmd
	err := s.viewCmds(func(b *bolt.Bucket) error {
		c := b.Cursor()
		for k, v := c.Seek(marshalSeq(uint64(from))); k != nil && unmarshalSeq(k) < uint64(upto); k, v = c.Next() {
			cmds = append(cmds, Cmd{Text: string(v), Seq: int(unmarshalSeq(k))})
		}
		return nil
	})
	return cmds, err
}

// NextCmd finds the first command at or after from whose text starts with
// prefix.
func (s *dbStore) NextCmd(from int, prefix string) (Cmd, error) {
	var cmd Cmd
	err := s.viewCmds(func(b *bolt.Bucket) error {
		c := b.Cursor()
		for k, v := c.Seek(marshalSeq(uint64(from))); k != nil; k, v = c.Next() {
			if bytes.HasPrefix(v, []byte(prefix)) {
				cmd = Cmd{Text: string(v), Seq: int(unmarshalSeq(k))}
				return nil
			}
		}
		return ErrNoMatchingCmd
	})
	return cmd, err
}

// PrevCmd finds the last command before upto whose text starts with prefix.
func (s *dbStore) PrevCmd(upto int, prefix string) (Cmd, error) {
	var cmd Cmd
	err := s.viewCmds(func(b *bolt.Bucket) error {
		c := b.Cursor()
		k, v := c.Seek(marshalSeq(uint64(upto)))
		if k == nil {
			// Everything is before upto.
			k, v = c.Last()
		} else {
			k, v = c.Prev()
		}
		for ; k != nil; k, v = c.Prev() {
			if bytes.HasPrefix(v, []byte(prefix)) {
				cmd = Cmd{Text: string(v), Seq: int(unmarshalSeq(k))}
				return nil
			}
		}
		return ErrNoMatchingCmd
	})
	return cmd, err
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}
