package bfs_test

import (
	"fmt"

	"github.com/katalvlaran/cfpq/bfs"
	"github.com/katalvlaran/cfpq/core"
)

// ExampleResult_Word prints the shortest label word from a source.
func ExampleResult_Word() {
	g := core.NewGraph()
	_, _ = g.AddEdge("0", "1", "subClassOf")
	_, _ = g.AddEdge("1", "2", "type")
	_, _ = g.AddEdge("0", "3", "type")

	res, err := bfs.Walk(g, []string{"0"})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(res.Order)
	word, _ := res.Word("2")
	fmt.Println(word)
	// Output:
	// [0 1 3 2]
	// [subClassOf type]
}
