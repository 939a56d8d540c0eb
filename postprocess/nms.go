package postprocess

// Suppress implements duplicate suppression over instance masks independent
// of class.  For every pair of instances whose mask IoU exceeds threshold the
// lower confidence one is marked.  On equal confidence the later instance is
// marked.  The returned slice is indexed like instances.
func Suppress(instances []Instance, threshold float64) []bool {

	worse := make([]bool, len(instances))

	for i := 0; i < len(instances); i++ {
		for j := i + 1; j < len(instances); j++ {

			if instances[i].Mask.IoU(instances[j].Mask) <= threshold {
				continue
			}

			if instances[i].Probability < instances[j].Probability {
				worse[i] = true
			} else {
				worse[j] = true
			}
		}
	}

	return worse
}
