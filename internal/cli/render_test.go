package cli

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/fusedglass/kiln/internal/model"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func testProgram() *model.KilnProgram {
	kiln := model.NewKiln(1, "Big Blue", "240V octagon")
	sequence := model.NewFiringSequence(3, "Full fuse", "Standard full fuse schedule", 1)
	return model.NewKilnProgram(kiln, sequence).
		AddStep(model.NewFiringStep(10, 3, model.AFAP(), 1000, 30)).
		AddStep(model.NewFiringStep(11, 3, model.DegPerSec(300), 1250, 15))
}

func testProject() *model.KilnProject {
	project := model.NewKilnProject(model.NewProject(7, "Blue bowl", "Layered bowl"))
	project.AddFiring(*testProgram(), "slight haze")

	kiln := model.NewKiln(1, "Big Blue", "240V octagon")
	slump := model.NewKilnProgram(kiln, model.NewFiringSequence(4, "Slump", "", 1))
	project.AddFiring(*slump, "")

	img := model.NewProjectImage(9, 7, "front.jpg", "after second firing")
	img.Contents = []byte("abcd")
	project.AddPicture(img)

	return project
}

func TestRenderProgram_WithSteps(t *testing.T) {
	g := newGoldie(t)
	g.Assert(t, "program_with_steps", []byte(renderProgram(testProgram())))
}

func TestRenderProgram_Empty(t *testing.T) {
	kiln := model.NewKiln(1, "Big Blue", "240V octagon")
	sequence := model.NewFiringSequence(4, "Slump", "", 1)
	program := model.NewKilnProgram(kiln, sequence)

	g := newGoldie(t)
	g.Assert(t, "program_empty", []byte(renderProgram(program)))
}

func TestRenderProject_Full(t *testing.T) {
	g := newGoldie(t)
	g.Assert(t, "project_full", []byte(renderProject(testProject())))
}

func TestRenderProject_Empty(t *testing.T) {
	project := model.NewKilnProject(model.NewProject(8, "Test tile", ""))

	g := newGoldie(t)
	g.Assert(t, "project_empty", []byte(renderProject(project)))
}

func TestRenderKiln(t *testing.T) {
	kiln := model.NewKiln(1, "Big Blue", "240V octagon")

	g := newGoldie(t)
	g.Assert(t, "kiln", []byte(renderKiln(&kiln)))
}
