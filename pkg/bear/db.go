// Package bear reads notes out of a Bear app sqlite database so they can be
// imported as wiki entries. The database is opened read-only.
package bear

import (
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

type Storage interface {
	Close()
	GetNoteByKey(key string) (*Note, error)
	GetAllNotes(tag string) ([]Note, error)
}

type StorageImpl struct {
	db *sqlx.DB
}

func (s *StorageImpl) Close() {
	s.db.Close()
}

func Connect(dbPath string) (*StorageImpl, error) {
	dbBear, err := sqlx.Open("sqlite3", "file:"+dbPath+"?mode=ro")
	if err != nil {
		return nil, errors.Wrap(err, "open bear db")
	}
	if err := dbBear.Ping(); err != nil {
		dbBear.Close()
		return nil, errors.Wrapf(err, "ping bear db %q", dbPath)
	}
	return &StorageImpl{dbBear}, nil
}

// GetAllNotes returns every live note, ordered by title. Untitled notes come
// back with an empty Title. A non-empty tag
// restricts the result to notes carrying that tag or one of its subtags.
func (s *StorageImpl) GetAllNotes(tag string) ([]Note, error) {
	var notes []Note
	tag = strings.Trim(tag, "#/ ")
	if tag == "" {
		if err := s.db.Select(&notes, `
SELECT N.ZUNIQUEIDENTIFIER AS key, COALESCE(N.ZTITLE, '') AS title, COALESCE(N.ZTEXT, '') AS text
FROM ZSFNOTE N
WHERE N.ZTRASHED = 0 AND N.ZARCHIVED = 0
ORDER BY N.ZTITLE`); err != nil {
			return nil, errors.Wrap(err, "select notes from bear db")
		}
		return notes, nil
	}

	if err := s.db.Select(&notes, `
SELECT DISTINCT N.ZUNIQUEIDENTIFIER AS key, COALESCE(N.ZTITLE, '') AS title, COALESCE(N.ZTEXT, '') AS text
FROM ZSFNOTE N
	JOIN Z_7TAGS T7 ON N.Z_PK = T7.Z_7NOTES
	JOIN ZSFNOTETAG T ON T7.Z_14TAGS = T.Z_PK
WHERE N.ZTRASHED = 0 AND N.ZARCHIVED = 0 AND (T.ZTITLE = $1 OR T.ZTITLE LIKE $2)
ORDER BY N.ZTITLE`, tag, tag+"/%"); err != nil {
		return nil, errors.Wrapf(err, "select notes tagged %q from bear db", tag)
	}
	return notes, nil
}

func (s *StorageImpl) GetNoteByKey(key string) (*Note, error) {
	dst := &Note{}
	err := s.db.Get(dst, `
SELECT ZUNIQUEIDENTIFIER AS key, COALESCE(ZTITLE, '') AS title, COALESCE(ZTEXT, '') AS text
FROM ZSFNOTE WHERE ZUNIQUEIDENTIFIER=$1`, key)
	if err != nil {
		return nil, errors.Wrapf(err, "get note %q", key)
	}
	return dst, nil
}
