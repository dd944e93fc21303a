package main

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/oomph-ac/lvrc/world"
)

// buildScene returns a small level to teleport around in. The player starts at the
// origin on a large floor with a wall to the left, a kerb behind them and a lava
// pit ahead, past which the floor continues.
func buildScene(w *world.World) {
	w.Add(
		world.Solid("floor", cube.Box(-2000, -2000, -10, 600, 2000, 0)),
		world.Solid("far-floor", cube.Box(900, -2000, -10, 3000, 2000, 0)),
		world.LethalVolume("lava", cube.Box(600, -2000, -1000, 900, 2000, -990)),
		world.Solid("wall", cube.Box(200, 300, 0, 220, 700, 250)),
		world.Solid("kerb", cube.Box(-600, -200, 0, -300, 200, 30)),
		world.Solid("low-wall", cube.Box(-200, -700, 0, 200, -680, 60)),
	)
}
