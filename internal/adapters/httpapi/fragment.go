package httpapi

import (
	"os"
)

// FallbackSearchFragment is served when the search fragment file is missing
// or unreadable.
const FallbackSearchFragment = `<section class="search">
  <div class="search-bar">
    <h2>Search inventory</h2>
    <input type="text" id="searchInput" placeholder="Search products...">
    <button id="searchButton">Search</button>
  </div>
  <div id="resultsContainer"></div>
</section>
`

var readFile = os.ReadFile

// SearchFragment returns the markup at path, or the fallback when path is
// empty or cannot be read.
func SearchFragment(path string) []byte {
	if path == "" {
		return []byte(FallbackSearchFragment)
	}
	data, err := readFile(path)
	if err != nil || len(data) == 0 {
		return []byte(FallbackSearchFragment)
	}
	return data
}
