package models_test

import (
	"fmt"

	"github.com/katalvlaran/modelfree/models"
)

func ExampleSelect() {
	m, err := models.Select("tm5")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(m.Equation, m.Params)
	// Output: mf_ext [local_tm s2f s2 ts]
}
