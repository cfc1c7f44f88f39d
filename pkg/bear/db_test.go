package bear

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const schema = `
CREATE TABLE ZSFNOTE (Z_PK INTEGER PRIMARY KEY, ZUNIQUEIDENTIFIER TEXT, ZTITLE TEXT, ZTEXT TEXT, ZTRASHED INTEGER, ZARCHIVED INTEGER);
CREATE TABLE ZSFNOTETAG (Z_PK INTEGER PRIMARY KEY, ZTITLE TEXT);
CREATE TABLE Z_7TAGS (Z_7NOTES INTEGER, Z_14TAGS INTEGER);
INSERT INTO ZSFNOTE VALUES (1, 'k1', 'Python', '# Python', 0, 0);
INSERT INTO ZSFNOTE VALUES (2, 'k2', 'CSS', '# CSS', 0, 0);
INSERT INTO ZSFNOTE VALUES (3, 'k3', 'Trashed', 'gone', 1, 0);
INSERT INTO ZSFNOTE VALUES (4, 'k4', 'Archived', 'old', 0, 1);
INSERT INTO ZSFNOTE VALUES (5, 'k5', 'Django', '# Django', 0, 0);
INSERT INTO ZSFNOTE VALUES (6, 'k6', NULL, 'untitled', 0, 0);
INSERT INTO ZSFNOTE VALUES (7, 'k7', 'Empty', NULL, 0, 0);
INSERT INTO ZSFNOTETAG VALUES (1, 'wiki');
INSERT INTO ZSFNOTETAG VALUES (2, 'wiki/web');
INSERT INTO ZSFNOTETAG VALUES (3, 'wikipedia');
INSERT INTO Z_7TAGS VALUES (1, 1);
INSERT INTO Z_7TAGS VALUES (5, 2);
INSERT INTO Z_7TAGS VALUES (5, 1);
INSERT INTO Z_7TAGS VALUES (2, 3);
INSERT INTO Z_7TAGS VALUES (3, 1);
`

func newBearDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "database.sqlite")
	db, err := sqlx.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()
	_, err = db.Exec(schema)
	require.NoError(t, err)
	return path
}

func titles(notes []Note) []string {
	res := make([]string, 0, len(notes))
	for _, n := range notes {
		res = append(res, n.Title)
	}
	return res
}

func TestGetAllNotes(t *testing.T) {
	s, err := Connect(newBearDB(t))
	require.NoError(t, err)
	defer s.Close()

	notes, err := s.GetAllNotes("")
	require.NoError(t, err)
	assert.Equal(t, []string{"", "CSS", "Django", "Empty", "Python"}, titles(notes))
	assert.Equal(t, "k6", notes[0].Key)
	assert.Equal(t, "untitled", string(notes[0].Text))
	assert.Equal(t, "# CSS", string(notes[1].Text))
	assert.Equal(t, "k2", notes[1].Key)
	assert.Empty(t, notes[3].Text)
}

func TestGetAllNotesByTag(t *testing.T) {
	s, err := Connect(newBearDB(t))
	require.NoError(t, err)
	defer s.Close()

	notes, err := s.GetAllNotes("#wiki")
	require.NoError(t, err)
	assert.Equal(t, []string{"Django", "Python"}, titles(notes))

	notes, err = s.GetAllNotes("wiki/web")
	require.NoError(t, err)
	assert.Equal(t, []string{"Django"}, titles(notes))
}

func TestGetNoteByKey(t *testing.T) {
	s, err := Connect(newBearDB(t))
	require.NoError(t, err)
	defer s.Close()

	note, err := s.GetNoteByKey("k1")
	require.NoError(t, err)
	assert.Equal(t, "Python", note.Title)

	note, err = s.GetNoteByKey("k6")
	require.NoError(t, err)
	assert.Equal(t, "", note.Title)
	assert.Equal(t, "untitled", string(note.Text))

	_, err = s.GetNoteByKey("missing")
	require.Error(t, err)
}

func TestConnectMissingDB(t *testing.T) {
	_, err := Connect(filepath.Join(t.TempDir(), "nope.sqlite"))
	require.Error(t, err)
}
