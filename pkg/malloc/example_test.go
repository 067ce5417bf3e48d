package malloc_test

import (
	"fmt"

	"github.com/joshuapare/poolalloc/pkg/malloc"
)

// Example allocates a buffer, grows it and releases it.
func Example() {
	p, err := malloc.Malloc(160)
	if err != nil {
		fmt.Printf("Malloc failed: %v\n", err)
		return
	}
	copy(malloc.Bytes(p, 160), "pool memory")

	p, err = malloc.Realloc(p, 300)
	if err != nil {
		fmt.Printf("Realloc failed: %v\n", err)
		return
	}
	fmt.Println(string(malloc.Bytes(p, 11)))
	fmt.Println(malloc.UsableSize(p))

	if err := malloc.Free(p); err != nil {
		fmt.Printf("Free failed: %v\n", err)
	}
	// Output:
	// pool memory
	// 504
}

// ExampleCalloc shows zeroed allocation.
func ExampleCalloc() {
	p, err := malloc.Calloc(21, 4)
	if err != nil {
		fmt.Printf("Calloc failed: %v\n", err)
		return
	}
	defer malloc.Free(p)

	zero := true
	for _, b := range malloc.Bytes(p, 84) {
		zero = zero && b == 0
	}
	fmt.Println(zero)
	// Output: true
}
