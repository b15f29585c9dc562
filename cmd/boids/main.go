package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/jlajr36/FlockingSimulation/pkg/flock"
	"github.com/jlajr36/FlockingSimulation/pkg/geometry"
)

type Game struct {
	flock *flock.Flock
	cfg   *flock.Config
}

func (g *Game) Update() error {
	g.flock.Step()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 10, G: 10, B: 30, A: 255})

	for _, b := range g.flock.Agents() {
		drawBoid(screen, b)
	}

	msg := fmt.Sprintf("FPS: %.2f\nTPS: %.2f\nBoids: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), len(g.flock.Agents()))
	ebitenutil.DebugPrintAt(screen, msg, int(g.cfg.WorldWidth)-120, 10)
}

func (g *Game) Layout(w, h int) (int, int) {
	return int(g.cfg.WorldWidth), int(g.cfg.WorldHeight)
}

var whiteImage = ebiten.NewImage(3, 3)

func init() {
	whiteImage.Fill(color.RGBA{R: 100, G: 200, B: 255, A: 255})
}

// drawBoid renders one boid as a small triangle pointing along its heading.
func drawBoid(screen *ebiten.Image, b *flock.Agent) {
	tip := b.Pos.Add(geometry.NewVectorPolar(6, b.Heading))
	right := b.Pos.Add(geometry.NewVectorPolar(5, b.Heading+2.5))
	left := b.Pos.Add(geometry.NewVectorPolar(5, b.Heading-2.5))

	vertices := []ebiten.Vertex{
		{
			DstX: float32(tip.X),
			DstY: float32(tip.Y),
			SrcX: 1, SrcY: 1,
			ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
		},
		{
			DstX: float32(right.X),
			DstY: float32(right.Y),
			SrcX: 1, SrcY: 1,
			ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
		},
		{
			DstX: float32(left.X),
			DstY: float32(left.Y),
			SrcX: 1, SrcY: 1,
			ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
		},
	}

	indices := []uint16{0, 1, 2}
	op := &ebiten.DrawTrianglesOptions{}

	screen.DrawTriangles(vertices, indices, whiteImage, op)
}

func main() {
	var (
		configFile = flag.String("config", "", "path to a config json file (built-in defaults when empty)")
		schemaFile = flag.String("schema", "config.schema.json", "path to the config JSON schema")
	)
	flag.Parse()

	cfg := flock.DefaultConfig()
	if *configFile != "" {
		loaded, err := flock.LoadConfig(*configFile, *schemaFile)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}

	g := &Game{
		flock: flock.New(cfg),
		cfg:   cfg,
	}

	ebiten.SetWindowSize(int(cfg.WorldWidth), int(cfg.WorldHeight))
	ebiten.SetWindowTitle("Boid Flocking Simulation")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
