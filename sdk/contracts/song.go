package contracts

import "context"

// EndOfSong is the pitch and delay pair that stops the sound driver.
const EndOfSong byte = 0xFF

// Note is one step of a converted song.
type Note struct {
	Pitch byte // Pitch index; 0 is the lowest C the driver plays, 0xFF marks an out-of-range value.
	Delay byte // Delay before the next note, in driver ticks; 0xFF when clamped.
}

// Song is the monophonic result of a conversion.
type Song struct {
	Title  string // Comma separated titles of the merged tracks.
	Notes  []Note // Notes in playing order, without the end-of-song marker.
	Factor int    // Tick quantization factor the delays were divided by.
	Tempo  byte   // Driver delay between ticks, 1-255.
}

// Converter turns Standard MIDI File data into a song.
type Converter interface {
	Convert(data []byte) (*Song, error) // Runs the whole conversion pipeline over a file's contents.
}

// Player plays converted songs on a MIDI output device.
type Player interface {
	Stop() error                                // Stops playback and releases the device.
	ListDevices() ([]DeviceInfo, error)         // Lists all available MIDI output devices.
	SelectDevice(deviceID int) error            // Selects a MIDI output device by its ID.
	Play(ctx context.Context, song *Song) error // Plays the song, blocking until it ends or ctx is done.
}
