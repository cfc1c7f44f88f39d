package bear

type Note struct {
	Key   string `db:"key"`
	Title string `db:"title"`
	Text  []byte `db:"text"`
}
