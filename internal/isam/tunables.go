package isam

// Alpha is the target page fill factor applied by Reorganize (spec.md §4.8,
// §6: default 0.5).
const Alpha = 0.5

// Beta is the overflow-ratio threshold above which Add triggers a
// reorganization (spec.md §4.3 step 8, §6: default 0.2).
const Beta = 0.2

// reorgFillTarget is floor(Alpha*RecordsPerPage): the slot count a freshly
// reorganized page is packed to before it is flushed.
const reorgFillTarget = int(Alpha * float64(RecordsPerPage))
