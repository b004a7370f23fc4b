// Package render turns analysis reports into chart files: interactive 3D
// HTML pages through go-echarts and static PNG line charts through
// go-chart.
package render
