package mathutil

import "math"

// ZUpToYUp converts Blender's Z-up frame to the Y-up frame used by glTF
// and most OBJ consumers: (x, y, z) -> (x, z, -y). Rx(-90°).
var ZUpToYUp = RotX(math.Pi / -2)
