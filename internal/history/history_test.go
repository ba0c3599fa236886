package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestNewManifestAssignsRunID(t *testing.T) {
	a := NewManifest("/cases/root", "root", true)
	b := NewManifest("/cases/root", "root", true)
	assert.NotEmpty(t, a.RunID)
	assert.NotEqual(t, a.RunID, b.RunID)
	assert.False(t, a.CreatedAt.IsZero())
}

func TestRecordReplacesByIndexAndCasesFilters(t *testing.T) {
	m := NewManifest("/r", "r", true)
	m.Record(PointRecord{Index: 0, Case: "/c/0", State: StateProvisioned})
	m.Record(PointRecord{Index: 1, Case: "/c/1", State: StateReadExisting})
	m.Record(PointRecord{Index: 0, Case: "/c/0", State: StateRegistered})
	m.Record(PointRecord{Index: 2, Case: "/c/2", State: StateFailed})

	require.Len(t, m.Points, 3)
	assert.Equal(t, StateRegistered, m.Points[0].State)
	assert.Equal(t, []string{"/c/0", "/c/1"}, m.Cases())
}

func TestOpenRejectsUnknownBackend(t *testing.T) {
	_, err := Open("redis", "x")
	require.Error(t, err)
}

type storeSuite struct {
	suite.Suite
	open func(dir string) (Store, error)
	dir  string
	st   Store
}

func (s *storeSuite) SetupTest() {
	s.dir = s.T().TempDir()
	st, err := s.open(s.dir)
	s.Require().NoError(err)
	s.st = st
}

func (s *storeSuite) TearDownTest() {
	s.Require().NoError(s.st.Close())
}

func (s *storeSuite) TestLoadEmpty() {
	_, err := s.st.Load()
	s.Require().ErrorIs(err, ErrNotFound)
}

func (s *storeSuite) TestRoundTrip() {
	m := NewManifest("/cases/root", "F2010", false)
	m.Dimensions = []string{"nu", "dt"}
	m.Record(PointRecord{Index: 0, Suffix: "nu_1", Case: "/c/F2010__nu_1", Values: []string{"1", "1800"}, State: StateRegistered})
	s.Require().NoError(s.st.Save(m))

	got, err := s.st.Load()
	s.Require().NoError(err)
	s.Equal(m.RunID, got.RunID)
	s.Equal(m.Points, got.Points)
	s.Equal([]string{"nu", "dt"}, got.Dimensions)
	s.False(got.Fill)
}

func (s *storeSuite) TestSaveOverwritesSameRun() {
	m := NewManifest("/r", "r", true)
	s.Require().NoError(s.st.Save(m))
	m.Record(PointRecord{Index: 0, Case: "/c/0", State: StateRegistered})
	s.Require().NoError(s.st.Save(m))

	got, err := s.st.Load()
	s.Require().NoError(err)
	s.Len(got.Points, 1)
}

func (s *storeSuite) TestLoadReturnsLatestRun() {
	older := NewManifest("/r", "old", true)
	older.UpdatedAt = time.Now().Add(-time.Hour).UTC()
	newer := NewManifest("/r", "new", true)
	s.Require().NoError(s.st.Save(older))
	s.Require().NoError(s.st.Save(newer))

	got, err := s.st.Load()
	s.Require().NoError(err)
	s.Equal("new", got.Prefix)
}

func TestFileStore(t *testing.T) {
	suite.Run(t, &storeSuite{open: func(dir string) (Store, error) {
		return Open(BackendFile, filepath.Join(dir, "state", "history.json"))
	}})
}

func TestSQLiteStore(t *testing.T) {
	suite.Run(t, &storeSuite{open: func(dir string) (Store, error) {
		return Open(BackendSQLite, filepath.Join(dir, "state", "history.db"))
	}})
}

func TestSQLiteListKeepsEveryRun(t *testing.T) {
	st, err := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.Save(NewManifest("/r", "a", true)))
	require.NoError(t, st.Save(NewManifest("/r", "b", true)))
	runs, err := st.List()
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestRunsListsEverySQLiteRun(t *testing.T) {
	st, err := Open(BackendSQLite, filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer st.Close()

	older := NewManifest("/r", "a", true)
	older.UpdatedAt = older.UpdatedAt.Add(-time.Hour)
	require.NoError(t, st.Save(older))
	newer := NewManifest("/r", "b", true)
	require.NoError(t, st.Save(newer))

	runs, err := Runs(st)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, newer.RunID, runs[0].RunID)
	assert.Equal(t, older.RunID, runs[1].RunID)
}

func TestRunsFileStoreKeepsLatestOnly(t *testing.T) {
	st := NewFileStore(filepath.Join(t.TempDir(), "history.json"))
	runs, err := Runs(st)
	require.NoError(t, err)
	assert.Empty(t, runs)

	m := NewManifest("/r", "a", false)
	require.NoError(t, st.Save(m))
	runs, err = Runs(st)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, m.RunID, runs[0].RunID)
}
