/*
Package server implements msgpack IPC for word completion services.

Clients write msgpack maps to stdin and read one msgpack response per
request from stdout. Every request carries an id that is echoed back, and
an op naming what to do; a request without op is a completion:

	{"id": "req_001", "p": "ame", "l": 24}

The server responds with suggestions ranked by frequency:

	{"id": "req_001", "s": [{"w": "amenity", "r": 1}, {"w": "america", "r": 2}], "c": 2, "t": 145}

t is the time spent in microseconds.

# Ops

	complete  p, l         completions of p, most frequent first
	fuzzy     p, l         completions, or corrections when there are none
	almost    p, d, tol, l words within d substitutions and tol length of p
	suggest   p            first word in order starting with p
	index     w            rank of w
	at        i            word at rank i
	prev      w            word before w
	next      w            word after w
	add       w, f         store w with frequency f
	remove    w            delete w
	size      n            resize the loaded dictionary to n chunks, n 0 only reports
	stats                  counters
	health                 liveness

Failures are reported as {"id", "e": message, "c": code} with code 400 for
bad requests, 404 for lookups without an answer and 500 for server faults.
*/
package server

// Request is the envelope of every client message.
type Request struct {
	ID        string `msgpack:"id"`
	Op        string `msgpack:"op,omitempty"`
	Prefix    string `msgpack:"p,omitempty"`
	Limit     int    `msgpack:"l,omitempty"`
	Distance  int    `msgpack:"d,omitempty"`
	Tolerance int    `msgpack:"tol,omitempty"`
	Index     int    `msgpack:"i,omitempty"`
	Word      string `msgpack:"w,omitempty"`
	Frequency int    `msgpack:"f,omitempty"`
	Chunks    int    `msgpack:"n,omitempty"`
}

// CompletionSuggestion - minimal suggestion response
type CompletionSuggestion struct {
	Word string `msgpack:"w"`
	Rank uint16 `msgpack:"r"`
	Freq int    `msgpack:"f,omitempty"`
}

// CompletionResponse answers complete, fuzzy and almost.
type CompletionResponse struct {
	ID          string                 `msgpack:"id"`
	Suggestions []CompletionSuggestion `msgpack:"s"`
	Count       int                    `msgpack:"c"`
	TimeTaken   int64                  `msgpack:"t"`
	Corrected   bool                   `msgpack:"x,omitempty"`
}

// WordResponse answers the single-word ops.
type WordResponse struct {
	ID    string `msgpack:"id"`
	Word  string `msgpack:"w"`
	Index int    `msgpack:"i"`
	Freq  int    `msgpack:"f,omitempty"`
}

// DictionarySizeOption - dictionary size option
type DictionarySizeOption struct {
	ChunkCount int    `msgpack:"chunk_count"`
	WordCount  int    `msgpack:"word_count"`
	SizeLabel  string `msgpack:"size_label"`
}

// DictionaryResponse - dictionary operation response
type DictionaryResponse struct {
	ID              string                 `msgpack:"id"`
	Status          string                 `msgpack:"status"`
	CurrentChunks   int                    `msgpack:"current_chunks"`
	AvailableChunks int                    `msgpack:"available_chunks"`
	Options         []DictionarySizeOption `msgpack:"options,omitempty"`
}

// StatsResponse carries the completer counters.
type StatsResponse struct {
	ID    string         `msgpack:"id"`
	Stats map[string]int `msgpack:"st"`
}

// StatusResponse answers health checks and announces readiness.
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// CompletionError holds basic error information for failed requests
type CompletionError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
