package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	audit "jurify/pkg/platform/audit"
)

type InMemoryStoreSuite struct {
	suite.Suite
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) TestListRecent() {
	s.Run("returns most recent first", func() {
		store := NewInMemoryStore(10)
		for i := range 3 {
			s.Require().NoError(store.Append(context.Background(), audit.Event{Action: fmt.Sprintf("a%d", i)}))
		}

		events, err := store.ListRecent(context.Background(), 2)
		s.Require().NoError(err)
		s.Require().Len(events, 2)
		s.Equal("a2", events[0].Action)
		s.Equal("a1", events[1].Action)
	})

	s.Run("non-positive limit returns everything", func() {
		store := NewInMemoryStore(10)
		s.Require().NoError(store.Append(context.Background(), audit.Event{Action: "only"}))

		events, err := store.ListRecent(context.Background(), 0)
		s.Require().NoError(err)
		s.Len(events, 1)
	})

	s.Run("empty store returns empty slice", func() {
		events, err := NewInMemoryStore(2).ListRecent(context.Background(), 5)
		s.Require().NoError(err)
		s.Empty(events)
	})
}

func (s *InMemoryStoreSuite) TestEvictsOldestWhenFull() {
	store := NewInMemoryStore(3)
	for i := range 5 {
		s.Require().NoError(store.Append(context.Background(), audit.Event{Action: fmt.Sprintf("a%d", i)}))
	}

	s.Equal(3, store.Len())
	s.Equal(int64(2), store.Dropped())

	events, err := store.ListRecent(context.Background(), 10)
	s.Require().NoError(err)
	s.Equal([]string{"a4", "a3", "a2"}, []string{events[0].Action, events[1].Action, events[2].Action})

	store.Clear()
	s.Equal(0, store.Len())
}
