package store

import (
	"context"

	"github.com/fusedglass/kiln/internal/model"
)

// GetKiln fetches a kiln by name. Lookups are exact-match and
// case-sensitive. Returns (nil, nil) when no kiln has that name.
func (s *Store) GetKiln(ctx context.Context, name string) (*model.Kiln, error) {
	name = normalizeName(name)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description FROM Kilns WHERE name = ?
	`, name)
	if err != nil {
		return nil, model.WrapSQL(err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, model.WrapSQL(err)
		}
		return nil, nil
	}
	var kiln model.Kiln
	if err := rows.Scan(&kiln.ID, &kiln.Name, &kiln.Description); err != nil {
		return nil, model.NewDeserializationError("Kiln", err)
	}
	return &kiln, nil
}

// ListKilns returns the names of all kilns in ascending lexical order.
// Returns an empty slice (not nil) when there are none.
func (s *Store) ListKilns(ctx context.Context) ([]string, error) {
	return s.listNames(ctx, `
		SELECT name FROM Kilns ORDER BY name ASC
	`)
}

// ListPrograms returns the names of the programs defined on a kiln, in
// ascending lexical order. A kiln that does not exist is not an error; it
// lists the same as a kiln with no programs: empty.
func (s *Store) ListPrograms(ctx context.Context, kiln string) ([]string, error) {
	return s.listNames(ctx, `
		SELECT Firing_sequences.name FROM Firing_sequences
		INNER JOIN Kilns ON Kilns.id = Firing_sequences.kiln_id
		WHERE Kilns.name = ?
		ORDER BY Firing_sequences.name ASC
	`, normalizeName(kiln))
}

// listNames collects the single text column of a query into a slice.
func (s *Store) listNames(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, model.WrapSQL(err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, model.NewDeserializationError("name", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, model.WrapSQL(err)
	}
	return names, nil
}

// GetProgram fetches the full program aggregate for (kiln name, program
// name): the kiln, the sequence header, and the steps ordered by ascending
// step id (insertion order at the time of the last replacement). Returns
// (nil, nil) when the pair does not resolve.
func (s *Store) GetProgram(ctx context.Context, kilnName, programName string) (*model.KilnProgram, error) {
	kilnName = normalizeName(kilnName)
	programName = normalizeName(programName)

	// Header first: one row joining the kiln to the sequence.
	headerRows, err := s.db.QueryContext(ctx, `
		SELECT Kilns.id, Kilns.description,
		       Firing_sequences.id, Firing_sequences.description
		FROM Kilns
		INNER JOIN Firing_sequences ON Firing_sequences.kiln_id = Kilns.id
		WHERE Kilns.name = ? AND Firing_sequences.name = ?
	`, kilnName, programName)
	if err != nil {
		return nil, model.WrapSQL(err)
	}
	defer headerRows.Close()

	if !headerRows.Next() {
		if err := headerRows.Err(); err != nil {
			return nil, model.WrapSQL(err)
		}
		return nil, nil
	}
	var (
		kilnID, seqID     int64
		kilnDesc, seqDesc string
	)
	if err := headerRows.Scan(&kilnID, &kilnDesc, &seqID, &seqDesc); err != nil {
		return nil, model.NewDeserializationError("KilnProgram", err)
	}
	headerRows.Close()

	kiln := model.NewKiln(kilnID, kilnName, kilnDesc)
	sequence := model.NewFiringSequence(seqID, programName, seqDesc, kilnID)
	program := model.NewKilnProgram(kiln, sequence)

	// Then the steps, in step-id order.
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, sequence_id, ramp, target, hold
		FROM Firing_steps
		WHERE sequence_id = ?
		ORDER BY id ASC
	`, seqID)
	if err != nil {
		return nil, model.WrapSQL(err)
	}
	defer rows.Close()

	for rows.Next() {
		step, err := scanStep(rows)
		if err != nil {
			return nil, err
		}
		program.AddStep(step)
	}
	if err := rows.Err(); err != nil {
		return nil, model.WrapSQL(err)
	}

	return program, nil
}

// GetProject fetches the full project aggregate by name: the project row,
// the (comment, program) firings ordered by ascending firing-sequence id,
// and the images ordered by ascending image id. Returns (nil, nil) when no
// project has that name.
//
// The three stages are separate reads, not one transaction. A writer
// committing between stages can produce a torn aggregate; with the single
// exclusive connection this layer assumes, that cannot happen in-process.
func (s *Store) GetProject(ctx context.Context, name string) (*model.KilnProject, error) {
	name = normalizeName(name)

	projRows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description FROM Projects WHERE name = ?
	`, name)
	if err != nil {
		return nil, model.WrapSQL(err)
	}

	if !projRows.Next() {
		err := projRows.Err()
		projRows.Close()
		if err != nil {
			return nil, model.WrapSQL(err)
		}
		return nil, nil
	}
	var proj model.Project
	if err := projRows.Scan(&proj.ID, &proj.Name, &proj.Description); err != nil {
		projRows.Close()
		return nil, model.NewDeserializationError("Project", err)
	}
	projRows.Close()

	project := model.NewKilnProject(proj)

	firings, err := s.projectFirings(ctx, proj.ID)
	if err != nil {
		return nil, err
	}
	for _, f := range firings {
		project.AddFiring(f.Program, f.Comment)
	}

	images, err := s.projectImages(ctx, proj.ID)
	if err != nil {
		return nil, err
	}
	for _, img := range images {
		project.AddPicture(img)
	}

	return project, nil
}

// projectFirings resolves a project's firing links into (comment, program)
// pairs. The join yields (kiln name, program name, comment) rows; each is
// then resolved through GetProgram. One query per firing is a deliberate
// simplicity tradeoff to reuse the single-program fetch path.
func (s *Store) projectFirings(ctx context.Context, projectID int64) ([]model.Firing, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT Kilns.name, Firing_sequences.name, Project_firings.comment
		FROM Project_firings
		INNER JOIN Firing_sequences ON Firing_sequences.id = Project_firings.firing_sequence_id
		INNER JOIN Kilns ON Kilns.id = Firing_sequences.kiln_id
		WHERE Project_firings.project_id = ?
		ORDER BY Firing_sequences.id ASC
	`, projectID)
	if err != nil {
		return nil, model.WrapSQL(err)
	}

	type firingRow struct {
		kiln, program, comment string
	}
	var refs []firingRow
	for rows.Next() {
		var r firingRow
		if err := rows.Scan(&r.kiln, &r.program, &r.comment); err != nil {
			rows.Close()
			return nil, model.NewDeserializationError("ProjectFiring", err)
		}
		refs = append(refs, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, model.WrapSQL(err)
	}
	rows.Close()

	firings := make([]model.Firing, 0, len(refs))
	for _, r := range refs {
		program, err := s.GetProgram(ctx, r.kiln, r.program)
		if err != nil {
			return nil, err
		}
		if program == nil {
			// The link row joined against a sequence moments ago, so this
			// only happens on a torn read.
			return nil, model.NewNoSuchProgram(r.kiln, r.program)
		}
		firings = append(firings, model.Firing{Comment: r.comment, Program: *program})
	}
	return firings, nil
}

// projectImages returns a project's images in image-id order.
func (s *Store) projectImages(ctx context.Context, projectID int64) ([]model.ProjectImage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, project_id, name, caption, contents
		FROM Project_images
		WHERE project_id = ?
		ORDER BY id ASC
	`, projectID)
	if err != nil {
		return nil, model.WrapSQL(err)
	}
	defer rows.Close()

	var images []model.ProjectImage
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, model.WrapSQL(err)
	}
	return images, nil
}
