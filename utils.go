package vrp

import (
	"fmt"
	"regexp"
)

// GetEdgeIndex maps the unordered pair {i,j} to its position in the packed
// upper-triangular variable layout used by the symmetric MIP model.
func GetEdgeIndex(i, j, N, start int) int {
	if j < i {
		i, j = j, i
	}
	count := start
	for k := 0; k < i; k++ {
		count += N - 1 - k
	}
	count += j - i - 1
	return count
}

func Print2DArray(a [][]int) {
	for _, x := range a {
		for _, y := range x {
			fmt.Printf("%d,", y)
		}
		fmt.Println("")
	}
}

func SanitizeJsonArrayLineBreaks(json string) string {
	res := fmt.Sprintf("%s", json)
	var numbers = regexp.MustCompile(`\s*([-]?[0-9]+(\.[0-9]+)?),\s+([-]?[0-9]+(\.[0-9]+)?)(,)?`)
	var brackets = regexp.MustCompile(`\[(([-]?[0-9]+(\.[0-9]+)?,)+[-]?[0-9]+(\.[0-9]+)?)\s+\](,?)(\s+)`)
	for numbers.MatchString(res) {
		res = numbers.ReplaceAllString(res, "$1,$3$5")
	}
	for brackets.MatchString(res) {
		res = brackets.ReplaceAllString(res, "[$1]$5$6")
	}
	return res
}
