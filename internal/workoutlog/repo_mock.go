package workoutlog

import (
	"context"
	"time"
)

type repoMock struct {
	Entries []Entry
}

func NewMockEntriesRepo() *repoMock {
	return &repoMock{
		Entries: []Entry{},
	}
}

func (m *repoMock) List(_ context.Context) ([]Entry, error) {
	entries := make([]Entry, len(m.Entries))
	copy(entries, m.Entries)
	return entries, nil
}

func (m *repoMock) Append(_ context.Context, entry Entry) (*Entry, error) {
	if entry.ID == "" {
		entry.ID = NewEntryID()
	}
	if entry.Date.IsZero() {
		entry.Date = time.Now()
	}
	m.Entries = append(m.Entries, entry)
	return &entry, nil
}

func (m *repoMock) UpdateSets(_ context.Context, id string, sets []Set) (*Entry, error) {
	for i := range m.Entries {
		if m.Entries[i].ID == id {
			m.Entries[i].CompletedSets = sets
			return &m.Entries[i], nil
		}
	}
	return nil, ErrEntryNotFound
}

func (m *repoMock) Delete(_ context.Context, idOrIndex string) error {
	for i := range m.Entries {
		if m.Entries[i].ID == idOrIndex {
			m.Entries = append(m.Entries[:i], m.Entries[i+1:]...)
			return nil
		}
	}
	return ErrEntryNotFound
}
