package model

import "io"

// ShardObject is an opened remote shard. Body must be closed by the caller.
type ShardObject struct {
	Body       io.ReadCloser
	StatusCode int    // HTTP status; 200 for sources without one
	Location   string // URL or gs:// path that was read
}

// IsSuccess reports whether the status code is 2xx
func (o *ShardObject) IsSuccess() bool {
	return o.StatusCode >= 200 && o.StatusCode < 300
}

// ShardResult is the outcome of fetching one shard
type ShardResult struct {
	Shard      Shard
	StatusCode int   // 0 when no response was received
	Bytes      int64 // bytes written to the local file
	Err        error // transport or local write error
}

// Written reports whether a local file was produced for the shard
func (r *ShardResult) Written() bool {
	return r.Err == nil && r.StatusCode != 0
}

// FetchReport collects the results of a whole run
type FetchReport struct {
	Dir     string
	Results []ShardResult
}

// Succeeded counts shards written with a 2xx response
func (r *FetchReport) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.Written() && res.StatusCode >= 200 && res.StatusCode < 300 {
			n++
		}
	}
	return n
}

// Failed returns the results that did not produce a 2xx file
func (r *FetchReport) Failed() []ShardResult {
	var failed []ShardResult
	for _, res := range r.Results {
		if !res.Written() || res.StatusCode < 200 || res.StatusCode >= 300 {
			failed = append(failed, res)
		}
	}
	return failed
}
