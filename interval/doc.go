/*Package interval implements genomic-coordinate primitives shared by the MHG
  partitioner: a PosType coordinate unit, a sequence-name registry, and an
  in-memory per-sequence block index supporting overlap queries.

  It assumes every position fits in a PosType, which is currently defined as
  int32 since that's what BAM files are limited to.
*/
package interval
