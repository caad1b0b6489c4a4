package model

// WordCount is the total match count of a word across all years
type WordCount struct {
	Word  string
	Count int64
}

// WordCounts is a dictionary built from local shard files
type WordCounts struct {
	Path    string      // written dictionary file
	Words   []WordCount // sorted by count desc, then word asc
	Read    []Shard
	Skipped []Shard // shards with no local file
}
