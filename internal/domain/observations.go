package domain

// Observations carries the parsed samples for one station: both met
// packages and the wave sensor. Moorings without a second met package
// leave Metbk2 empty.
type Observations struct {
	Metbk1 []MetbkSample
	Metbk2 []MetbkSample
	Wavss  []WavssSample
}
