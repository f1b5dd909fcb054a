package main

import (
	"flag"
	"log"

	"mini-mc/internal/config"
	"mini-mc/internal/profiling"
	"mini-mc/internal/render"
	"mini-mc/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// Headless driver: generates a deterministic terrain window around a fixed
// camera, runs the visibility cull every frame and reports what would be
// submitted to a GPU backend.
func main() {
	seed := flag.Int64("seed", 1337, "terrain seed")
	radius := flag.Int("radius", 12, "render distance in chunks")
	frames := flag.Int("frames", 4, "number of cull passes to run")
	occlusion := flag.Bool("occlusion", true, "enable the BFS occlusion pass")
	flag.Parse()

	config.SetRenderRadius(*radius)
	config.SetOcclusionCullingEnabled(*occlusion)

	gen := world.HillTerrain{Seed: *seed}
	w := world.New(gen)

	camera := mgl32.Vec3{8, float32(gen.HeightAt(8, 8)) + 2, 8}
	w.EnsureColumns(0, 0, config.GetRenderRadius())

	proj := mgl32.Perspective(mgl32.DegToRad(70), 16.0/9.0, 0.1, 1024)
	view := mgl32.LookAtV(camera, camera.Add(mgl32.Vec3{1, -0.25, 0.4}), mgl32.Vec3{0, 1, 0})
	clip := proj.Mul4(view)

	var batches []render.Batch
	for frame := 0; frame < *frames; frame++ {
		profiling.ResetFrame()
		lists := w.CullAndSort(camera, clip, config.GetRenderRadius())
		batches = render.BuildBatches(lists, batches)
		log.Printf("frame %d: %d regions, %d sections [%s]",
			frame, len(batches), render.SectionCount(batches), profiling.TopN(3))
	}
}
