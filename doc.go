/*Package dos extracts spin-resolved electronic density-of-states curves from
XCD spectral documents and assembles whole strain series into a single keyed
container.


	**godos capabilities**


    Reads XCD spectral documents into named energy/intensity curves.

    Computes orbital band centers (intensity-weighted mean energies) by
	trapezoidal integration.

    Reconciles the alpha/beta labeling of the d-orbital pair, which the
	upstream simulation tool does not guarantee: the curve with the higher
	band center always ends up assigned to alpha. Beta intensities are
	negated so that the spin channels mirror each other around the zero
	axis when plotted.

    Orders the calculations of a strain-series directory into their physical
	sequence (compressive strains from most negative, then tensile strains,
	with surface/subsurface/bulk groups kept adjacent), for the three
	known directory layouts.

    Processes all calculations of a series concurrently and writes the
	reconciled tables, plus an ordered index, into one compressed columnar
	container (packages batch and store).

    Extracts scalar quantities (final energy, lattice parameters, pressure,
	cell contents) from CASTEP logs (package castep).

    Draws mirrored alpha/beta DOS plots (package dosplot).

Curves are kept exactly as parsed: point order is trusted from the upstream
file and never resorted, and the alpha and beta columns of one orbital are
row-aligned with each other but not across orbitals.*/
package dos
