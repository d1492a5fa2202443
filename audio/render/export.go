package render

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-voicefx/audio/wavfile"
	"github.com/cwbudde/algo-voicefx/dsp/voicefx"
)

// MIMEType is the content type of exported files.
const MIMEType = "audio/wav"

// Export is a file ready to hand to a download or share collaborator.
type Export struct {
	Data     []byte
	Filename string
	MIMEType string

	// Processed is false when Data is the unprocessed recording.
	Processed bool
	Stats     Stats
}

// Filename returns the export name for id at time unixMilli.
func Filename(id voicefx.ID, unixMilli int64) string {
	return fmt.Sprintf("voice-effect-%s-%d.wav", id, unixMilli)
}

// Export decodes a recorded WAV file, renders id at intensity and encodes
// the result. Any decode, render or encode failure is logged and the
// original recording is returned unchanged; Export itself never fails.
func (r *Renderer) Export(recording []byte, id voicefx.ID, intensity voicefx.Intensity) *Export {
	exp := &Export{
		Data:     recording,
		Filename: Filename(id, r.now().UnixMilli()),
		MIMEType: MIMEType,
	}

	log := r.logger.WithFields(logrus.Fields{
		"effect":    id,
		"intensity": intensity,
		"bytes":     len(recording),
	})

	data, stats, err := r.process(recording, id, intensity)
	if err != nil {
		log.WithError(err).Warn("effect render failed, exporting original recording")
		return exp
	}

	if stats.Clipped > 0 {
		log.WithFields(logrus.Fields{
			"peak":    stats.Peak,
			"clipped": stats.Clipped,
		}).Debug("rendered output clamped")
	}

	exp.Data = data
	exp.Processed = true
	exp.Stats = stats
	return exp
}

func (r *Renderer) process(recording []byte, id voicefx.ID, intensity voicefx.Intensity) ([]byte, Stats, error) {
	sig, err := wavfile.DecodeBytes(recording)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("decode: %w", err)
	}

	res, err := r.Render(sig, id, intensity)
	if err != nil {
		return nil, Stats{}, err
	}

	data, err := wavfile.Encode(res.Signal)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("encode: %w", err)
	}
	return data, res.Stats, nil
}
