package mesh_test

import (
	"fmt"

	"github.com/matzehuels/trussmesh/pkg/geom"
	"github.com/matzehuels/trussmesh/pkg/mesh"
)

func ExampleBuild() {
	m := mesh.Build([]geom.Segment{
		geom.NewTaggedSegment(geom.Point3D{X: 1}, geom.Point3D{X: 2}, "B"),
		geom.NewTaggedSegment(geom.Point3D{}, geom.Point3D{X: 1}, "A"),
	})

	for _, p := range m.Points {
		fmt.Println(p.ID, p.Point3D)
	}
	for _, e := range m.Edges {
		fmt.Println(e.A, e.B, e.Tag, e.TagIndex)
	}
	fmt.Println(m.Tags())
	// Output:
	// 0 (0, 0, 0)
	// 1 (1, 0, 0)
	// 2 (2, 0, 0)
	// 0 1 A 0
	// 1 2 B 1
	// [A B]
}

func ExampleMesh_Labels() {
	m := mesh.Build([]geom.Segment{
		geom.NewTaggedSegment(geom.Point3D{}, geom.Point3D{X: 4}, "chord"),
	})
	for _, l := range m.Labels() {
		fmt.Println(l.Text, l.Position)
	}
	// Output:
	// n:0 (0, 0, 0)
	// n:1 (4, 0, 0)
	// e:0 chord (2, 0, 0)
}
