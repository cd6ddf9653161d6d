/*
Package server implements msgpack IPC for gesture recognition.

The server reads msgpack messages from stdin and writes one msgpack response per message to stdout.
Messages are processed synchronously with timing info included in responses.

# IPC

Each message carries an ID that is echoed back. A message with points is a recognition request:

	{"id": "g_001", "pts": [[112, 140], [118, 139], ...], "w": 1080, "h": 720, "k": 5}

Points are absolute canvas coordinates; w and h give the canvas size. When both are omitted the points are
taken as already relative to the keyboard, in [0,1]. The server responds with words ranked by DTW distance:

	{"id": "g_001", "s": [{"w": "hello", "d": 0.83, "r": 1}, {"w": "hell", "d": 1.2, "r": 2}], "c": 2, "t": 845}

A message with a word is a membership query. Non-members get close spellings in "near":

	{"id": "q_001", "word": "helo"}
	{"id": "q_001", "ok": false, "near": ["hello", "help"]}

Failures are reported with an HTTP-like code: 400 for malformed requests, 422 for an empty gesture and
500 for anything else.

	{"id": "g_002", "e": "empty gesture", "c": 422}
*/
package server

// RecognizeRequest - gesture recognition request
type RecognizeRequest struct {
	ID     string      `msgpack:"id"`
	Points [][]float64 `msgpack:"pts"`
	Width  float64     `msgpack:"w,omitempty"`
	Height float64     `msgpack:"h,omitempty"`
	K      int         `msgpack:"k,omitempty"`
}

// Suggestion - one ranked word
type Suggestion struct {
	Word     string  `msgpack:"w"`
	Distance float64 `msgpack:"d"`
	Rank     uint16  `msgpack:"r"`
}

// RecognizeResponse - recognition response, TimeTaken in microseconds
type RecognizeResponse struct {
	ID          string       `msgpack:"id"`
	Suggestions []Suggestion `msgpack:"s"`
	Count       int          `msgpack:"c"`
	TimeTaken   int64        `msgpack:"t"`
}

// ContainsRequest - dictionary membership query
type ContainsRequest struct {
	ID   string `msgpack:"id"`
	Word string `msgpack:"word"`
}

// ContainsResponse - membership answer
type ContainsResponse struct {
	ID   string   `msgpack:"id"`
	OK   bool     `msgpack:"ok"`
	Near []string `msgpack:"near,omitempty"`
}

// ErrorResponse holds basic error information for any request
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}

// Error codes
const (
	CodeBadRequest    = 400
	CodeEmptyGesture  = 422
	CodeInternalError = 500
)

// envelope holds the fields used to tell request kinds apart.
type envelope struct {
	ID     string `msgpack:"id"`
	Word   string `msgpack:"word"`
	Points any    `msgpack:"pts"`
}
