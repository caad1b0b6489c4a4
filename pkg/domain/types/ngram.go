package types

// Google Books Ngram English corpus, 2020-02-17 export, 1-grams.
const (
	// ShardCount is the number of archive shards in the corpus.
	ShardCount = 24

	// ShardWidth is the zero-padded width of a shard number in file names.
	ShardWidth = 5

	// BaseURL is the public HTTP location of the shards.
	BaseURL = "http://storage.googleapis.com/books/ngrams/books/20200217/eng/"

	// Bucket and ObjectPrefix address the same shards through the storage API.
	Bucket       = "books"
	ObjectPrefix = "ngrams/books/20200217/eng/"
)

// DictionaryFile is the word count list derived from the shards
const DictionaryFile = "library-counts.txt"

// DictionaryWordLength is the length of words kept in the dictionary
const DictionaryWordLength = 5
