package store

import (
	"database/sql"

	"github.com/fusedglass/kiln/internal/model"
)

// scanStep maps one Firing_steps row, decoding the signed ramp column back
// into a RampRate.
func scanStep(rows *sql.Rows) (model.FiringStep, error) {
	var (
		id, sequenceID, ramp, target, hold int64
	)
	if err := rows.Scan(&id, &sequenceID, &ramp, &target, &hold); err != nil {
		return model.FiringStep{}, model.NewDeserializationError("FiringStep", err)
	}
	return model.NewFiringStep(id, sequenceID, model.DecodeRampRate(ramp), target, hold), nil
}

// scanImage maps one Project_images row. Contents come back byte-for-byte
// as stored.
func scanImage(rows *sql.Rows) (model.ProjectImage, error) {
	var img model.ProjectImage
	if err := rows.Scan(&img.ID, &img.ProjectID, &img.Name, &img.Caption, &img.Contents); err != nil {
		return model.ProjectImage{}, model.NewDeserializationError("ProjectImage", err)
	}
	return img, nil
}
