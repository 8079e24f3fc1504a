// Package chart draws the grouped bar chart comparing two-earner minimum wage
// income with the living wage per state.
//
// BuildGapSeries turns wage records into a domain.GapSeries. A Renderer then
// writes it out: HTMLRenderer produces an SVG page and opens it in the default
// browser, XLSXRenderer produces a workbook with a native column chart.
package chart
