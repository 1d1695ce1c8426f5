package modsel_test

import (
	"fmt"

	"github.com/katalvlaran/modelfree/modsel"
)

func ExampleAIC() {
	fmt.Println(modsel.AIC(10, 3, 20))
	fmt.Printf("%.4f\n", modsel.AICc(10, 3, 20))
	fmt.Printf("%.4f\n", modsel.BIC(10, 3, 20))
	// Output:
	// 16
	// 17.5000
	// 18.9872
}
